package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BatchSortFields contains allowed sort fields for production batches
var BatchSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"batch_number":    true,
	"lot_number":      true,
	"status":          true,
	"brew_date":       true,
	"end_brew_date":   true,
	"bottled_date":    true,
	"actual_volume_l": true,
}

// EquipmentSortFields contains allowed sort fields for equipment
var EquipmentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"kind":       true,
	"capacity_l": true,
}

// ItemSortFields contains allowed sort fields for items
var ItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"type":       true,
	"cost_price": true,
	"is_active":  true,
}

// StockIssueSortFields contains allowed sort fields for stock documents
var StockIssueSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"issue_number": true,
	"doc_type":     true,
	"purpose":      true,
	"status":       true,
	"total_cost":   true,
	"confirmed_at": true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"item_id":      true,
	"warehouse_id": true,
	"direction":    true,
	"quantity":     true,
	"lot_number":   true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"is_active":  true,
	"is_default": true,
}
