// db/repo_copy.go
package db

import (
	"context"
	"errors"

	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/models"

	"gorm.io/gorm"
)

// Copy store. Implements lending.CopyStore: read-modify-write cycles go
// through the version column, a write that lost the race comes back as
// lending.ErrConflict.

func (r *Repo) GetCopy(ctx context.Context, id string) (*models.BookCopy, error) {
	var bc models.BookCopy
	if err := r.DB.WithContext(ctx).First(&bc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lending.ErrNotFound
		}
		return nil, err
	}
	return &bc, nil
}

func (r *Repo) CreateCopy(ctx context.Context, bc *models.BookCopy) error {
	return r.DB.WithContext(ctx).Create(bc).Error
}

// UpdateCopy persists the mutated copy only if nobody else wrote it since
// it was read. Same conditional-update trick as a compare-and-swap:
// WHERE id AND version, bump version on success.
func (r *Repo) UpdateCopy(ctx context.Context, bc *models.BookCopy) error {
	res := r.DB.WithContext(ctx).Model(&models.BookCopy{}).
		Where("id = ? AND version = ?", bc.ID, bc.Version).
		Updates(map[string]interface{}{
			"book_id":     bc.BookID,
			"imprint":     bc.Imprint,
			"status":      bc.Status,
			"due_back":    bc.DueBack,
			"borrower_id": bc.BorrowerID,
			"version":     bc.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or someone bumped the version first.
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.BookCopy{}).
			Where("id = ?", bc.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return lending.ErrNotFound
		}
		return lending.ErrConflict
	}
	bc.Version++
	return nil
}

func (r *Repo) DeleteCopy(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.BookCopy{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

// Read models. Filtering happens in SQL; status and due_back are plain
// filterable columns, nothing here re-validates the state machine.

type CopiesQuery struct {
	Status  models.Status // "" means all
	Overdue bool
	Page    int
	Size    int
}

type PagedCopies struct {
	Total  int64             `json:"total"`
	Copies []models.BookCopy `json:"copies"`
}

func (r *Repo) ListCopies(ctx context.Context, q CopiesQuery) (*PagedCopies, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.BookCopy{})
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Overdue {
		tx = tx.Where("due_back IS NOT NULL AND due_back < CURRENT_DATE")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var copies []models.BookCopy
	if err := tx.
		Order("due_back ASC NULLS LAST, created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&copies).Error; err != nil {
		return nil, err
	}
	return &PagedCopies{Total: total, Copies: copies}, nil
}

// ListAvailableCopies is the shelf view users borrow from: available and
// with no pending due date.
func (r *Repo) ListAvailableCopies(ctx context.Context) ([]models.BookCopy, error) {
	var copies []models.BookCopy
	err := r.DB.WithContext(ctx).
		Where("status = ? AND due_back IS NULL", models.StatusAvailable).
		Order("created_at DESC").
		Find(&copies).Error
	return copies, err
}

// ListCopiesOnLoanByUser lists the copies currently out with one borrower,
// oldest due date first.
func (r *Repo) ListCopiesOnLoanByUser(ctx context.Context, userID string) ([]models.BookCopy, error) {
	var copies []models.BookCopy
	err := r.DB.WithContext(ctx).
		Where("status = ? AND borrower_id = ?", models.StatusOnLoan, userID).
		Order("due_back ASC").
		Find(&copies).Error
	return copies, err
}

// ListCopiesOnLoan is the librarian view of everything that is out.
func (r *Repo) ListCopiesOnLoan(ctx context.Context) ([]models.BookCopy, error) {
	var copies []models.BookCopy
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.StatusOnLoan).
		Order("due_back ASC").
		Find(&copies).Error
	return copies, err
}

// ListBorrowRequests lists copies waiting for librarian approval.
func (r *Repo) ListBorrowRequests(ctx context.Context) ([]models.BookCopy, error) {
	var copies []models.BookCopy
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.StatusBorrowRequested).
		Order("due_back ASC").
		Find(&copies).Error
	return copies, err
}
