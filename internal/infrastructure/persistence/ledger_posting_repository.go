package persistence

import (
	"context"
	"errors"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerPostingRepository implements LedgerPostingRepository using GORM
type GormLedgerPostingRepository struct {
	db *gorm.DB
}

// NewGormLedgerPostingRepository creates a new GormLedgerPostingRepository
func NewGormLedgerPostingRepository(db *gorm.DB) *GormLedgerPostingRepository {
	return &GormLedgerPostingRepository{db: db}
}

// Save persists a posting. The posting key has a unique index, and the insert
// does nothing on conflict, so replaying the same business event leaves the
// first posting untouched.
func (r *GormLedgerPostingRepository) Save(ctx context.Context, posting *finance.LedgerPosting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "party_type"},
				{Name: "party_id"},
				{Name: "ref_type"},
				{Name: "ref_id"},
			},
			DoNothing: true,
		}).
		Create(posting).Error
}

// DeleteByKey removes the posting for a business event, if present
func (r *GormLedgerPostingRepository) DeleteByKey(ctx context.Context, partyType finance.PartyType, partyID uuid.UUID, refType, refID string) error {
	return r.db.WithContext(ctx).
		Where("party_type = ? AND party_id = ? AND ref_type = ? AND ref_id = ?",
			partyType, partyID, refType, refID).
		Delete(&finance.LedgerPosting{}).Error
}

// FindByKey finds the posting for a business event
func (r *GormLedgerPostingRepository) FindByKey(ctx context.Context, partyType finance.PartyType, partyID uuid.UUID, refType, refID string) (*finance.LedgerPosting, error) {
	var posting finance.LedgerPosting
	if err := r.db.WithContext(ctx).
		Where("party_type = ? AND party_id = ? AND ref_type = ? AND ref_id = ?",
			partyType, partyID, refType, refID).
		First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &posting, nil
}

// ExistsByRef checks whether any party holds a posting for a business event
func (r *GormLedgerPostingRepository) ExistsByRef(ctx context.Context, refType, refID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&finance.LedgerPosting{}).
		Where("ref_type = ? AND ref_id = ?", refType, refID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByParty lists a party's postings, newest first
func (r *GormLedgerPostingRepository) FindByParty(ctx context.Context, partyType finance.PartyType, partyID uuid.UUID, filter shared.Filter) ([]*finance.LedgerPosting, error) {
	var postings []*finance.LedgerPosting
	query := r.db.WithContext(ctx).
		Model(&finance.LedgerPosting{}).
		Where("party_type = ? AND party_id = ?", partyType, partyID)

	for key, value := range filter.Filters {
		switch key {
		case "ref_type":
			query = query.Where("ref_type = ?", value)
		case "direction":
			query = query.Where("direction = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, LedgerPostingSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// BalanceByParty returns the signed sum of a party's postings
func (r *GormLedgerPostingRepository) BalanceByParty(ctx context.Context, partyType finance.PartyType, partyID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&finance.LedgerPosting{}).
		Where("party_type = ? AND party_id = ?", partyType, partyID).
		Select("SUM(CASE WHEN direction = ? THEN amount ELSE -amount END)", finance.PostingDirectionDebit).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// Ensure GormLedgerPostingRepository implements LedgerPostingRepository
var _ finance.LedgerPostingRepository = (*GormLedgerPostingRepository)(nil)
