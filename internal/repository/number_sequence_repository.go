package repository

import (
	"context"
	"errors"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NumberSequenceRepository issues gap-free sequence numbers per prefix and
// year. The counter row is locked for the duration of the increment so that
// concurrent callers never receive the same number.
type NumberSequenceRepository struct {
	db *gorm.DB
}

func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// GetNextNumber increments and returns the counter, starting at 1
func (r *NumberSequenceRepository) GetNextNumber(ctx context.Context, prefix string, year int) (int, error) {
	var next int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.NumberSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("prefix = ? AND year = ?", prefix, year).
			First(&seq).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = domain.NumberSequence{Prefix: prefix, Year: year, LastSequence: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			next = 1
		case err != nil:
			return err
		default:
			next = seq.LastSequence + 1
			if err := tx.Model(&seq).Update("last_sequence", next).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, domain.NewStoreError("next_number", domain.TableNumberSequences, err)
	}

	return next, nil
}

// GetCurrentSequence returns the last issued number, or 0 when none was issued
func (r *NumberSequenceRepository) GetCurrentSequence(ctx context.Context, prefix string, year int) (int, error) {
	var seq domain.NumberSequence
	err := r.db.WithContext(ctx).
		Where("prefix = ? AND year = ?", prefix, year).
		First(&seq).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, domain.NewStoreError("current_number", domain.TableNumberSequences, err)
	}
	return seq.LastSequence, nil
}
