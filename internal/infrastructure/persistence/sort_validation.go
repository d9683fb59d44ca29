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

// BatchSortFields contains allowed sort fields for stock batches
var BatchSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"book_id":            true,
	"source_ref":         true,
	"received_quantity":  true,
	"available_quantity": true,
	"unit_cost":          true,
}

// StockTransactionSortFields contains allowed sort fields for movement log entries
var StockTransactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"book_id":    true,
	"type":       true,
	"quantity":   true,
	"ref_type":   true,
	"ref_id":     true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"supplier_id":  true,
	"sent_at":      true,
	"cancelled_at": true,
}

// RequirementSortFields contains allowed sort fields for book requirements
var RequirementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"school_id":  true,
	"book_id":    true,
	"quantity":   true,
	"status":     true,
}

// BookSortFields contains allowed sort fields for books
var BookSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"isbn":       true,
	"title":      true,
	"publisher":  true,
	"list_price": true,
	"status":     true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// SchoolSortFields contains allowed sort fields for schools
var SchoolSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// LedgerPostingSortFields contains allowed sort fields for ledger postings
var LedgerPostingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"party_type": true,
	"party_id":   true,
	"ref_type":   true,
	"direction":  true,
	"amount":     true,
}
