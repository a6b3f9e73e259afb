package brewing

import (
	"context"
	"testing"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchService_PlanBatch(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()

	recipe := f.seedRecipe("100", "2000", nil)
	equipment := f.seedEquipment("FV-01")

	resp, err := svc.PlanBatch(context.Background(), f.tenantID, PlanBatchRequest{
		RecipeID:    &recipe.ID,
		EquipmentID: &equipment.ID,
		LotNumber:   "L-2026-08",
	})
	require.NoError(t, err)

	assert.Equal(t, brewing.BatchStatusPlanned.String(), resp.Status)
	assert.NotEmpty(t, resp.BatchNumber)
	assert.Equal(t, "L-2026-08", resp.LotNumber)

	// planning only records the equipment, it stays available
	assert.Equal(t, brewing.EquipmentStatusAvailable, f.reloadEquipment(equipment.ID).Status)
	assert.Contains(t, f.publisher.eventTypes(), brewing.EventTypeBatchPlanned)
}

func TestBatchService_PlanBatchUnknownRecipe(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()

	other := f.seedRecipe("100", "2000", nil)
	_ = other
	missing := f.seedBatch(nil, nil, nil).ID // any uuid not stored as a recipe

	_, err := svc.PlanBatch(context.Background(), f.tenantID, PlanBatchRequest{RecipeID: &missing})
	assert.Error(t, err)
}

func TestBatchService_TransitionWalksTheLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	batch := f.seedBatch(nil, nil, nil)

	for _, status := range []brewing.BatchStatus{
		brewing.BatchStatusBrewing,
		brewing.BatchStatusFermenting,
		brewing.BatchStatusConditioning,
		brewing.BatchStatusCarbonating,
		brewing.BatchStatusPackaging,
		brewing.BatchStatusCompleted,
	} {
		resp, err := svc.Transition(context.Background(), f.tenantID, batch.ID, TransitionRequest{Status: string(status)})
		require.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status.String(), resp.Status)
	}

	reloaded := f.reloadBatch(batch.ID)
	assert.NotNil(t, reloaded.BrewDate)
	assert.NotNil(t, reloaded.EndBrewDate)
}

func TestBatchService_TransitionRejectsSkips(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	batch := f.seedBatch(nil, nil, nil)

	_, err := svc.Transition(context.Background(), f.tenantID, batch.ID, TransitionRequest{Status: string(brewing.BatchStatusCompleted)})
	require.Error(t, err)
	assertDomainCode(t, err, "INVALID_TRANSITION")

	// rejected transitions leave the batch untouched
	assert.Equal(t, brewing.BatchStatusPlanned, f.reloadBatch(batch.ID).Status)
}

func TestBatchService_DumpRequiresNote(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	batch := f.seedBatch(nil, nil, nil)

	_, err := svc.Transition(context.Background(), f.tenantID, batch.ID, TransitionRequest{Status: string(brewing.BatchStatusDumped)})
	require.Error(t, err)
	assertDomainCode(t, err, "NOTE_REQUIRED")

	resp, err := svc.Transition(context.Background(), f.tenantID, batch.ID, TransitionRequest{
		Status: string(brewing.BatchStatusDumped),
		Note:   "wild yeast contamination",
	})
	require.NoError(t, err)
	assert.Equal(t, brewing.BatchStatusDumped.String(), resp.Status)

	notes, err := svc.ListNotes(context.Background(), f.tenantID, batch.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "wild yeast contamination", notes[0].Note)
}

func TestBatchService_NoteRecordedOnAnyTransition(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	batch := f.seedBatch(nil, nil, nil)

	_, err := svc.Transition(context.Background(), f.tenantID, batch.ID, TransitionRequest{
		Status: string(brewing.BatchStatusBrewing),
		Note:   "mash at 67C",
	})
	require.NoError(t, err)

	notes, err := svc.ListNotes(context.Background(), f.tenantID, batch.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, brewing.BatchStatusBrewing, notes[0].Status)
}

func TestBatchService_BrewingClaimsEquipment(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	equipment := f.seedEquipment("FV-01")
	batch := f.seedBatch(nil, nil, &equipment.ID)

	_, err := svc.Transition(context.Background(), f.tenantID, batch.ID, TransitionRequest{Status: string(brewing.BatchStatusBrewing)})
	require.NoError(t, err)

	claimed := f.reloadEquipment(equipment.ID)
	assert.Equal(t, brewing.EquipmentStatusInUse, claimed.Status)
	require.NotNil(t, claimed.CurrentBatchID)
	assert.Equal(t, batch.ID, *claimed.CurrentBatchID)
}

func TestBatchService_ClaimConflictRejectsTransition(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	equipment := f.seedEquipment("FV-01")

	first := f.seedBatch(nil, nil, &equipment.ID)
	second := f.seedBatch(nil, nil, &equipment.ID)

	_, err := svc.Transition(context.Background(), f.tenantID, first.ID, TransitionRequest{Status: string(brewing.BatchStatusBrewing)})
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), f.tenantID, second.ID, TransitionRequest{Status: string(brewing.BatchStatusBrewing)})
	require.Error(t, err)
	assertDomainCode(t, err, "EQUIPMENT_IN_USE")

	// the second batch never left PLANNED
	assert.Equal(t, brewing.BatchStatusPlanned, f.reloadBatch(second.ID).Status)
}

func TestBatchService_TerminalStatusReleasesEquipment(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	equipment := f.seedEquipment("FV-01")
	batch := f.seedBatch(nil, nil, &equipment.ID)

	ctx := context.Background()
	_, err := svc.Transition(ctx, f.tenantID, batch.ID, TransitionRequest{Status: string(brewing.BatchStatusBrewing)})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, f.tenantID, batch.ID, TransitionRequest{
		Status: string(brewing.BatchStatusDumped),
		Note:   "infection",
	})
	require.NoError(t, err)

	released := f.reloadEquipment(equipment.ID)
	assert.Equal(t, brewing.EquipmentStatusAvailable, released.Status)
	assert.Nil(t, released.CurrentBatchID)
}

func TestBatchService_AssignEquipmentMovesTheClaim(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()
	old := f.seedEquipment("FV-01")
	next := f.seedEquipment("FV-02")
	batch := f.seedBatch(nil, nil, &old.ID)

	ctx := context.Background()
	_, err := svc.Transition(ctx, f.tenantID, batch.ID, TransitionRequest{Status: string(brewing.BatchStatusBrewing)})
	require.NoError(t, err)

	_, err = svc.AssignEquipment(ctx, f.tenantID, batch.ID, AssignEquipmentRequest{EquipmentID: &next.ID})
	require.NoError(t, err)

	assert.Equal(t, brewing.EquipmentStatusAvailable, f.reloadEquipment(old.ID).Status)
	assert.Equal(t, brewing.EquipmentStatusInUse, f.reloadEquipment(next.ID).Status)

	reloaded := f.reloadBatch(batch.ID)
	require.NotNil(t, reloaded.EquipmentID)
	assert.Equal(t, next.ID, *reloaded.EquipmentID)
}

func TestBatchService_TransitionUnknownBatch(t *testing.T) {
	f := newFixture(t)
	svc := f.batchService()

	_, err := svc.Transition(context.Background(), f.tenantID, f.seedEquipment("FV-01").ID, TransitionRequest{Status: string(brewing.BatchStatusBrewing)})
	require.Error(t, err)
	assertDomainCode(t, err, "BATCH_NOT_FOUND")
}
