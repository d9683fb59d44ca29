package persistence

import (
	"context"

	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements StockTransactionRepository using
// GORM. The movement log is append-only: entries are only ever created, so the
// repository exposes no update or delete path.
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Save appends a log entry
func (r *GormStockTransactionRepository) Save(ctx context.Context, txn *inventory.StockTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// FindByBook lists a book's entries, newest first
func (r *GormStockTransactionRepository) FindByBook(ctx context.Context, bookID uuid.UUID, filter shared.Filter) ([]*inventory.StockTransaction, error) {
	var txns []*inventory.StockTransaction
	query := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("book_id = ?", bookID)

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "ref_type":
			query = query.Where("ref_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, StockTransactionSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindByRef lists entries tied to a business document
func (r *GormStockTransactionRepository) FindByRef(ctx context.Context, refType, refID string) ([]*inventory.StockTransaction, error) {
	var txns []*inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("ref_type = ? AND ref_id = ?", refType, refID).
		Order("created_at ASC, id ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// ExistsByRef checks whether any entry of the given type is tied to a document
func (r *GormStockTransactionRepository) ExistsByRef(ctx context.Context, txnType inventory.TransactionType, refType, refID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("type = ? AND ref_type = ? AND ref_id = ?", txnType, refType, refID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByRefAndBook checks whether an entry of the given type is tied to a
// document for one specific book
func (r *GormStockTransactionRepository) ExistsByRefAndBook(ctx context.Context, txnType inventory.TransactionType, refType, refID string, bookID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("type = ? AND ref_type = ? AND ref_id = ? AND book_id = ?", txnType, refType, refID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumReservedByBook returns reserve minus unreserve totals for a book.
// The reserved quantity is never stored; it is always derived from the log.
func (r *GormStockTransactionRepository) SumReservedByBook(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("book_id = ? AND type IN ?", bookID, []inventory.TransactionType{
			inventory.TransactionTypeReserve,
			inventory.TransactionTypeUnreserve,
		}).
		Select("SUM(CASE WHEN type = ? THEN quantity ELSE -quantity END)", inventory.TransactionTypeReserve).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// Ensure GormStockTransactionRepository implements StockTransactionRepository
var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
