package brewing

import (
	"context"
	"sort"
	"sync"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes backing the service tests. They honor the same
// contracts as the GORM implementations (tenant scoping, line replacement,
// the active-receipt lookup) without a database.

type memRepos struct {
	batches    *memBatchRepo
	equipment  *memEquipmentRepo
	recipes    *memRecipeRepo
	notes      *memNoteRepo
	bottling   *memBottlingRepo
	issues     *memIssueRepo
	movements  *memMovementRepo
	levels     *memLevelRepo
	items      *memItemRepo
	units      *memUnitRepo
	warehouses *memWarehouseRepo
	settings   *memSettingsRepo
}

func newMemRepos() *memRepos {
	return &memRepos{
		batches:    &memBatchRepo{byID: map[uuid.UUID]brewing.Batch{}},
		equipment:  &memEquipmentRepo{byID: map[uuid.UUID]brewing.Equipment{}},
		recipes:    &memRecipeRepo{byID: map[uuid.UUID]brewing.RecipeSnapshot{}},
		notes:      &memNoteRepo{},
		bottling:   &memBottlingRepo{byBatch: map[uuid.UUID][]brewing.BottlingItem{}},
		issues:     &memIssueRepo{byID: map[uuid.UUID]stock.StockIssue{}},
		movements:  &memMovementRepo{},
		levels:     &memLevelRepo{onHand: map[levelKey]decimal.Decimal{}},
		items:      &memItemRepo{byID: map[uuid.UUID]catalog.Item{}},
		units:      &memUnitRepo{byID: map[uuid.UUID]catalog.Unit{}},
		warehouses: &memWarehouseRepo{},
		settings:   &memSettingsRepo{},
	}
}

func (r *memRepos) BatchRepo() brewing.BatchRepository            { return r.batches }
func (r *memRepos) EquipmentRepo() brewing.EquipmentRepository    { return r.equipment }
func (r *memRepos) RecipeRepo() brewing.RecipeRepository          { return r.recipes }
func (r *memRepos) NoteRepo() brewing.BatchNoteRepository         { return r.notes }
func (r *memRepos) BottlingRepo() brewing.BottlingItemRepository  { return r.bottling }
func (r *memRepos) IssueRepo() stock.StockIssueRepository         { return r.issues }
func (r *memRepos) MovementRepo() stock.StockMovementRepository   { return r.movements }
func (r *memRepos) LevelRepo() stock.StockLevelRepository         { return r.levels }
func (r *memRepos) ItemRepo() catalog.ItemRepository              { return r.items }
func (r *memRepos) UnitRepo() catalog.UnitRepository              { return r.units }
func (r *memRepos) WarehouseRepo() catalog.WarehouseRepository    { return r.warehouses }
func (r *memRepos) SettingsRepo() catalog.TenantSettingsRepository { return r.settings }

var _ TransactionalRepositories = (*memRepos)(nil)

type memBatchRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]brewing.Batch
}

func (r *memBatchRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*brewing.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || b.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &b, nil
}

func (r *memBatchRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]brewing.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []brewing.Batch
	for _, b := range r.byID {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchNumber < out[j].BatchNumber })
	return out, nil
}

func (r *memBatchRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	all, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(all)), nil
}

func (r *memBatchRepo) Save(_ context.Context, batch *brewing.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[batch.ID] = *batch
	return nil
}

type memEquipmentRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]brewing.Equipment
}

func (r *memEquipmentRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*brewing.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

func (r *memEquipmentRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*brewing.Equipment, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *memEquipmentRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]brewing.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []brewing.Equipment
	for _, e := range r.byID {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memEquipmentRepo) Save(_ context.Context, equipment *brewing.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[equipment.ID] = *equipment
	return nil
}

type memRecipeRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]brewing.RecipeSnapshot
}

func (r *memRecipeRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*brewing.RecipeSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok || rec.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

func (r *memRecipeRepo) put(rec *brewing.RecipeSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = *rec
}

type memNoteRepo struct {
	mu    sync.Mutex
	notes []brewing.BatchNote
}

func (r *memNoteRepo) Append(_ context.Context, note *brewing.BatchNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *memNoteRepo) FindByBatch(_ context.Context, tenantID, batchID uuid.UUID) ([]brewing.BatchNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []brewing.BatchNote
	for _, n := range r.notes {
		if n.TenantID == tenantID && n.BatchID == batchID {
			out = append(out, n)
		}
	}
	return out, nil
}

type memBottlingRepo struct {
	mu      sync.Mutex
	byBatch map[uuid.UUID][]brewing.BottlingItem
}

func (r *memBottlingRepo) FindByBatch(_ context.Context, _, batchID uuid.UUID) ([]brewing.BottlingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]brewing.BottlingItem(nil), r.byBatch[batchID]...), nil
}

func (r *memBottlingRepo) ReplaceForBatch(_ context.Context, _, batchID uuid.UUID, items []brewing.BottlingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byBatch[batchID] = append([]brewing.BottlingItem(nil), items...)
	return nil
}

type memIssueRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]stock.StockIssue

	// receiptLookupErr, when set, is returned by FindActiveReceiptForBatch
	// to simulate a storage failure.
	receiptLookupErr error
}

func (r *memIssueRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*stock.StockIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.byID[id]
	if !ok || doc.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	doc.Lines = append([]stock.StockIssueLine(nil), doc.Lines...)
	return &doc, nil
}

func (r *memIssueRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]stock.StockIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.StockIssue
	for _, doc := range r.byID {
		if doc.TenantID == tenantID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memIssueRepo) FindActiveReceiptForBatch(_ context.Context, tenantID, batchID uuid.UUID) (*stock.StockIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.receiptLookupErr != nil {
		return nil, r.receiptLookupErr
	}
	for _, doc := range r.byID {
		if doc.TenantID != tenantID || doc.BatchID == nil || *doc.BatchID != batchID {
			continue
		}
		if doc.Purpose == stock.MovementPurposeProductionIn && doc.Status != stock.IssueStatusCancelled {
			found := doc
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memIssueRepo) FindConfirmedIssueLinesForBatch(_ context.Context, tenantID, batchID uuid.UUID) ([]stock.StockIssueLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.StockIssueLine
	for _, doc := range r.byID {
		if doc.TenantID != tenantID || doc.BatchID == nil || *doc.BatchID != batchID {
			continue
		}
		if doc.Purpose == stock.MovementPurposeProductionOut && doc.Status == stock.IssueStatusConfirmed {
			out = append(out, doc.Lines...)
		}
	}
	return out, nil
}

func (r *memIssueRepo) Save(_ context.Context, issue *stock.StockIssue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *issue
	copied.Lines = append([]stock.StockIssueLine(nil), issue.Lines...)
	r.byID[issue.ID] = copied
	return nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []stock.StockMovement
}

func (r *memMovementRepo) Append(_ context.Context, movement *stock.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memMovementRepo) FindOutByIssueLines(_ context.Context, tenantID uuid.UUID, issueLineIDs []uuid.UUID) ([]stock.StockMovement, error) {
	wanted := make(map[uuid.UUID]struct{}, len(issueLineIDs))
	for _, id := range issueLineIDs {
		wanted[id] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.StockMovement
	for _, m := range r.movements {
		if m.TenantID != tenantID || m.Direction != stock.MovementDirectionOut {
			continue
		}
		if _, ok := wanted[m.IssueLineID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) FindByBatch(_ context.Context, tenantID, batchID uuid.UUID) ([]stock.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.StockMovement
	for _, m := range r.movements {
		if m.TenantID == tenantID && m.BatchID != nil && *m.BatchID == batchID {
			out = append(out, m)
		}
	}
	return out, nil
}

type levelKey struct {
	itemID      uuid.UUID
	warehouseID uuid.UUID
}

type memLevelRepo struct {
	mu     sync.Mutex
	onHand map[levelKey]decimal.Decimal
}

func (r *memLevelRepo) ApplyDelta(_ context.Context, _, itemID, warehouseID uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := levelKey{itemID: itemID, warehouseID: warehouseID}
	r.onHand[key] = r.onHand[key].Add(delta)
	return nil
}

func (r *memLevelRepo) FindForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]stock.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.StockLevel
	for key, qty := range r.onHand {
		out = append(out, stock.StockLevel{ItemID: key.itemID, WarehouseID: key.warehouseID, OnHand: qty})
	}
	return out, nil
}

func (r *memLevelRepo) get(itemID, warehouseID uuid.UUID) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onHand[levelKey{itemID: itemID, warehouseID: warehouseID}]
}

type memItemRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]catalog.Item
}

func (r *memItemRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[id]
	if !ok || item.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

func (r *memItemRepo) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Item
	for _, id := range ids {
		if item, ok := r.byID[id]; ok && item.TenantID == tenantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItemRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Item
	for _, item := range r.byID {
		if item.TenantID == tenantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItemRepo) Save(_ context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = *item
	return nil
}

type memUnitRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]catalog.Unit
}

func (r *memUnitRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	unit, ok := r.byID[id]
	if !ok || unit.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &unit, nil
}

func (r *memUnitRepo) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Unit
	for _, id := range ids {
		if unit, ok := r.byID[id]; ok && unit.TenantID == tenantID {
			out = append(out, unit)
		}
	}
	return out, nil
}

func (r *memUnitRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]catalog.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Unit
	for _, unit := range r.byID {
		if unit.TenantID == tenantID {
			out = append(out, unit)
		}
	}
	return out, nil
}

func (r *memUnitRepo) Save(_ context.Context, unit *catalog.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[unit.ID] = *unit
	return nil
}

type memWarehouseRepo struct {
	mu         sync.Mutex
	warehouses []catalog.Warehouse
}

func (r *memWarehouseRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.warehouses {
		if w.TenantID == tenantID && w.ID == id {
			found := w
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWarehouseRepo) FindOperational(_ context.Context, tenantID uuid.UUID) (*catalog.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstActive *catalog.Warehouse
	for i := range r.warehouses {
		w := r.warehouses[i]
		if w.TenantID != tenantID || !w.IsActive {
			continue
		}
		if w.IsDefault {
			return &w, nil
		}
		if firstActive == nil {
			firstActive = &w
		}
	}
	if firstActive == nil {
		return nil, shared.ErrNotFound
	}
	return firstActive, nil
}

func (r *memWarehouseRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]catalog.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Warehouse
	for _, w := range r.warehouses {
		if w.TenantID == tenantID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) Save(_ context.Context, warehouse *catalog.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.warehouses {
		if r.warehouses[i].ID == warehouse.ID {
			r.warehouses[i] = *warehouse
			return nil
		}
	}
	r.warehouses = append(r.warehouses, *warehouse)
	return nil
}

type memSettingsRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]catalog.TenantSettings
}

func (r *memSettingsRepo) FindForTenant(_ context.Context, tenantID uuid.UUID) (*catalog.TenantSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.settings[tenantID]; ok {
		return &s, nil
	}
	return catalog.NewTenantSettings(tenantID), nil
}

func (r *memSettingsRepo) Save(_ context.Context, settings *catalog.TenantSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		r.settings = map[uuid.UUID]catalog.TenantSettings{}
	}
	r.settings[settings.TenantID] = *settings
	return nil
}

// stubNumberer hands out fixed document codes
type stubNumberer struct {
	mu    sync.Mutex
	calls int
}

func (n *stubNumberer) Next(_ context.Context, _ uuid.UUID, docType string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return docType + "-" + uuid.NewString()[:8], nil
}

// capturingPublisher records published events for assertions
type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
