// lending/workflow.go
package lending

import (
	"context"
	"time"

	"Gin_postgres_redis_library_lending/models"

	"github.com/google/uuid"
)

// CopyStore is the persistence port for book copies. UpdateCopy must apply
// the write only if the stored version still equals copy.Version, and
// return ErrConflict otherwise; GetCopy/DeleteCopy return ErrNotFound for
// unknown ids.
type CopyStore interface {
	GetCopy(ctx context.Context, id string) (*models.BookCopy, error)
	CreateCopy(ctx context.Context, copy *models.BookCopy) error
	UpdateCopy(ctx context.Context, copy *models.BookCopy) error
	DeleteCopy(ctx context.Context, id string) error
}

// Workflow drives the lending lifecycle of book copies. Every operation
// authorizes the actor, validates the payload before touching the stored
// record, and persists through the version-checked store, so a failed call
// never leaves a partial write behind.
type Workflow struct {
	store CopyStore
	today func() time.Time
}

// NewWorkflow builds a Workflow. today may be nil, then the wall clock is
// used; tests inject a fixed date.
func NewWorkflow(store CopyStore, today func() time.Time) *Workflow {
	if today == nil {
		today = time.Now
	}
	return &Workflow{store: store, today: today}
}

type CreateCopyInput struct {
	BookID  *string
	Imprint string
	Status  models.Status
}

// CreateCopy registers a new physical copy. New copies always enter the
// shelf as Available; asking for any other initial status is rejected.
func (w *Workflow) CreateCopy(ctx context.Context, actor Actor, in CreateCopyInput) (*models.BookCopy, error) {
	if err := Authorize(actor, OpCreateCopy); err != nil {
		return nil, err
	}

	var ve ValidationError
	if in.Status != models.StatusAvailable {
		ve.add("status", KindInvalidStatusForCreate, `You must create as "Available" only!`)
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	bc := &models.BookCopy{
		ID:      uuid.NewString(),
		BookID:  in.BookID,
		Imprint: in.Imprint,
		Status:  models.StatusAvailable,
	}
	if err := w.store.CreateCopy(ctx, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

type UpdateCopyInput struct {
	Imprint string
	Status  models.Status
}

// UpdateCopy is the general librarian edit of a copy. On-loan can only be
// reached through ApproveBorrow, so it is not an acceptable target here.
// Moving a copy to Available or Maintenance clears the date/borrower fields
// those states forbid; Reserved keeps the existing due date and is rejected
// when there is none, a reservation always carries a date.
func (w *Workflow) UpdateCopy(ctx context.Context, actor Actor, copyID string, in UpdateCopyInput) (*models.BookCopy, error) {
	if err := Authorize(actor, OpUpdateCopy); err != nil {
		return nil, err
	}

	var ve ValidationError
	switch in.Status {
	case models.StatusAvailable, models.StatusMaintenance, models.StatusReserved:
	default:
		ve.add("status", KindInvalidStatusForUpdate, `You must update as "Available" or "Maintenance" or "Reserved" only!`)
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	bc, err := w.store.GetCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if in.Status == models.StatusReserved && bc.DueBack == nil {
		ve.add("status", KindInvalidStatusForUpdate, `You cannot reserve a copy without a due date!`)
		return nil, &ve
	}

	bc.Imprint = in.Imprint
	bc.Status = in.Status
	switch in.Status {
	case models.StatusAvailable:
		bc.DueBack = nil
		bc.BorrowerID = nil
	case models.StatusMaintenance:
		bc.DueBack = nil
	}
	if err := w.store.UpdateCopy(ctx, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

// DeleteCopy removes the record. No status precondition: a librarian may
// retire a copy even while it is out.
func (w *Workflow) DeleteCopy(ctx context.Context, actor Actor, copyID string) error {
	if err := Authorize(actor, OpDeleteCopy); err != nil {
		return err
	}
	return w.store.DeleteCopy(ctx, copyID)
}

type BorrowRequestInput struct {
	DueBack time.Time
}

// BorrowRequest places a user's request to borrow a copy. Only copies
// sitting on the shelf (Available, no due date) are eligible; anything else
// reads as not found, the same way an ineligible copy never shows up on the
// borrow page. The proposed return date must be within the borrow window.
func (w *Workflow) BorrowRequest(ctx context.Context, actor Actor, copyID string, in BorrowRequestInput) (*models.BookCopy, error) {
	if err := Authorize(actor, OpBorrowRequest); err != nil {
		return nil, err
	}

	bc, err := w.store.GetCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if bc.Status != models.StatusAvailable || bc.DueBack != nil {
		return nil, ErrNotFound
	}

	if fe := BorrowWindow.Validate(in.DueBack, w.today()); fe != nil {
		return nil, &ValidationError{Fields: []FieldError{*fe}}
	}

	due := truncateToDay(in.DueBack)
	borrower := actor.ID
	bc.Status = models.StatusBorrowRequested
	bc.DueBack = &due
	bc.BorrowerID = &borrower
	if err := w.store.UpdateCopy(ctx, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

type ApproveBorrowInput struct {
	Status models.Status
}

// ApproveBorrow is the librarian's approval of a pending borrow request.
// The only status a librarian may write here is On-Loan; the due date and
// borrower were already fixed by the request.
func (w *Workflow) ApproveBorrow(ctx context.Context, actor Actor, copyID string, in ApproveBorrowInput) (*models.BookCopy, error) {
	if err := Authorize(actor, OpApproveBorrow); err != nil {
		return nil, err
	}

	var ve ValidationError
	if in.Status != models.StatusOnLoan {
		ve.add("status", KindInvalidStatusForApproval, `You must approve as "On-Loan"`)
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	bc, err := w.store.GetCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if bc.Status != models.StatusBorrowRequested {
		return nil, ErrNotFound
	}

	bc.Status = models.StatusOnLoan
	if err := w.store.UpdateCopy(ctx, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

type RenewLoanInput struct {
	DueBack time.Time
}

// RenewLoan extends the due date of a copy that is out on loan. Status and
// borrower are untouched; only the date moves, and only within the renewal
// window.
func (w *Workflow) RenewLoan(ctx context.Context, actor Actor, copyID string, in RenewLoanInput) (*models.BookCopy, error) {
	if err := Authorize(actor, OpRenewLoan); err != nil {
		return nil, err
	}

	bc, err := w.store.GetCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if bc.Status != models.StatusOnLoan {
		return nil, ErrNotFound
	}

	if fe := RenewalWindow.Validate(in.DueBack, w.today()); fe != nil {
		return nil, &ValidationError{Fields: []FieldError{*fe}}
	}

	due := truncateToDay(in.DueBack)
	bc.DueBack = &due
	if err := w.store.UpdateCopy(ctx, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

type MarkReturnedInput struct {
	Status     models.Status
	DueBack    *time.Time
	BorrowerID *string
}

// MarkReturned puts a copy back on the shelf. The librarian must submit
// status Available with empty date and borrower fields; each offending
// field is reported, not just the first one. There is no precondition on
// the copy's current state, a compliant request always succeeds.
func (w *Workflow) MarkReturned(ctx context.Context, actor Actor, copyID string, in MarkReturnedInput) (*models.BookCopy, error) {
	if err := Authorize(actor, OpMarkReturned); err != nil {
		return nil, err
	}

	var ve ValidationError
	if in.BorrowerID != nil {
		ve.add("borrower", KindBorrowerMustBeEmpty, "Borrower field must be empty")
	}
	if in.DueBack != nil {
		ve.add("due_back", KindDueBackMustBeNull, "Date must be Null")
	}
	if in.Status != models.StatusAvailable {
		ve.add("status", KindStatusMustBeAvailable, `You must mark as "Available"`)
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	bc, err := w.store.GetCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}

	bc.Status = models.StatusAvailable
	bc.DueBack = nil
	bc.BorrowerID = nil
	if err := w.store.UpdateCopy(ctx, bc); err != nil {
		return nil, err
	}
	return bc, nil
}
