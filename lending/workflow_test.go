package lending

import (
	"context"
	"testing"
	"time"

	"Gin_postgres_redis_library_lending/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps copies in a map and mimics the version check the real
// store performs, so conflict paths are testable without a database.
type fakeStore struct {
	copies         map[string]models.BookCopy
	updates        int
	failUpdateWith error
}

func newFakeStore(seed ...models.BookCopy) *fakeStore {
	s := &fakeStore{copies: make(map[string]models.BookCopy)}
	for _, bc := range seed {
		s.copies[bc.ID] = bc
	}
	return s
}

func (s *fakeStore) GetCopy(_ context.Context, id string) (*models.BookCopy, error) {
	bc, ok := s.copies[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := bc
	return &out, nil
}

func (s *fakeStore) CreateCopy(_ context.Context, bc *models.BookCopy) error {
	s.copies[bc.ID] = *bc
	return nil
}

func (s *fakeStore) UpdateCopy(_ context.Context, bc *models.BookCopy) error {
	if s.failUpdateWith != nil {
		return s.failUpdateWith
	}
	stored, ok := s.copies[bc.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != bc.Version {
		return ErrConflict
	}
	bc.Version++
	s.copies[bc.ID] = *bc
	s.updates++
	return nil
}

func (s *fakeStore) DeleteCopy(_ context.Context, id string) error {
	if _, ok := s.copies[id]; !ok {
		return ErrNotFound
	}
	delete(s.copies, id)
	return nil
}

func fixedToday() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

func newTestWorkflow(store *fakeStore) *Workflow {
	return NewWorkflow(store, fixedToday)
}

func dayPtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}

// --- CreateCopy ---

func TestCreateCopyOnlyAvailable(t *testing.T) {
	store := newFakeStore()
	w := newTestWorkflow(store)

	for _, st := range []models.Status{models.StatusOnLoan, models.StatusReserved, models.StatusMaintenance, models.StatusBorrowRequested} {
		_, err := w.CreateCopy(context.Background(), librarianActor(), CreateCopyInput{Imprint: "1st ed.", Status: st})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "status %s", st)
		assert.True(t, ve.Has(KindInvalidStatusForCreate))
		assert.Empty(t, store.copies)
	}
}

func TestCreateCopySucceeds(t *testing.T) {
	store := newFakeStore()
	w := newTestWorkflow(store)

	bc, err := w.CreateCopy(context.Background(), librarianActor(), CreateCopyInput{Imprint: "1st ed.", Status: models.StatusAvailable})
	require.NoError(t, err)
	assert.NotEmpty(t, bc.ID)
	assert.Equal(t, models.StatusAvailable, bc.Status)
	assert.Nil(t, bc.DueBack)
	assert.Nil(t, bc.BorrowerID)
	assert.Contains(t, store.copies, bc.ID)
}

func TestCreateCopyMemberForbidden(t *testing.T) {
	w := newTestWorkflow(newFakeStore())
	_, err := w.CreateCopy(context.Background(), memberActor(), CreateCopyInput{Imprint: "x", Status: models.StatusAvailable})
	assert.Equal(t, KindForbidden, CodeOf(err))
}

// --- UpdateCopy ---

func TestUpdateCopyRejectsOnLoanTarget(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Imprint: "old", Status: models.StatusAvailable})
	w := newTestWorkflow(store)

	_, err := w.UpdateCopy(context.Background(), librarianActor(), "c1", UpdateCopyInput{Imprint: "new", Status: models.StatusOnLoan})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has(KindInvalidStatusForUpdate))
	assert.Equal(t, "old", store.copies["c1"].Imprint)
}

func TestUpdateCopyToAvailableClearsLoanFields(t *testing.T) {
	borrower := "mem-1"
	store := newFakeStore(models.BookCopy{
		ID: "c1", Imprint: "old", Status: models.StatusOnLoan,
		DueBack: dayPtr(fixedToday()), BorrowerID: &borrower,
	})
	w := newTestWorkflow(store)

	bc, err := w.UpdateCopy(context.Background(), librarianActor(), "c1", UpdateCopyInput{Imprint: "new", Status: models.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, bc.Status)
	assert.Nil(t, bc.DueBack)
	assert.Nil(t, bc.BorrowerID)
	assert.Equal(t, "new", bc.Imprint)
}

func TestUpdateCopyToReservedKeepsDueDate(t *testing.T) {
	store := newFakeStore(models.BookCopy{
		ID: "c1", Imprint: "old", Status: models.StatusOnLoan, DueBack: dayPtr(fixedToday()),
	})
	w := newTestWorkflow(store)

	bc, err := w.UpdateCopy(context.Background(), librarianActor(), "c1", UpdateCopyInput{Imprint: "old", Status: models.StatusReserved})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReserved, bc.Status)
	assert.NotNil(t, bc.DueBack)
}

func TestUpdateCopyToReservedRequiresDueDate(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Imprint: "old", Status: models.StatusAvailable})
	w := newTestWorkflow(store)

	_, err := w.UpdateCopy(context.Background(), librarianActor(), "c1", UpdateCopyInput{Imprint: "old", Status: models.StatusReserved})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has(KindInvalidStatusForUpdate))
	assert.Equal(t, models.StatusAvailable, store.copies["c1"].Status)
	assert.Zero(t, store.updates)
}

func TestUpdateCopyUnknownIDNotFound(t *testing.T) {
	w := newTestWorkflow(newFakeStore())
	_, err := w.UpdateCopy(context.Background(), librarianActor(), "nope", UpdateCopyInput{Imprint: "x", Status: models.StatusAvailable})
	assert.Equal(t, KindNotFound, CodeOf(err))
}

// --- BorrowRequest ---

func TestBorrowRequestHappyPath(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Status: models.StatusAvailable})
	w := newTestWorkflow(store)

	due := fixedToday().AddDate(0, 0, 10)
	bc, err := w.BorrowRequest(context.Background(), memberActor(), "c1", BorrowRequestInput{DueBack: due})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBorrowRequested, bc.Status)
	require.NotNil(t, bc.DueBack)
	assert.Equal(t, *dayPtr(due), *bc.DueBack)
	require.NotNil(t, bc.BorrowerID)
	assert.Equal(t, "mem-1", *bc.BorrowerID)
}

func TestBorrowRequestPastDateLeavesCopyUntouched(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Status: models.StatusAvailable})
	w := newTestWorkflow(store)

	_, err := w.BorrowRequest(context.Background(), memberActor(), "c1", BorrowRequestInput{DueBack: fixedToday().AddDate(0, 0, -2)})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has(KindDateInPast))

	stored := store.copies["c1"]
	assert.Equal(t, models.StatusAvailable, stored.Status)
	assert.Nil(t, stored.DueBack)
	assert.Nil(t, stored.BorrowerID)
	assert.Zero(t, store.updates)
}

func TestBorrowRequestIneligibleCopyReadsAsNotFound(t *testing.T) {
	store := newFakeStore(
		models.BookCopy{ID: "on-loan", Status: models.StatusOnLoan},
		models.BookCopy{ID: "maint", Status: models.StatusMaintenance},
		models.BookCopy{ID: "dated", Status: models.StatusAvailable, DueBack: dayPtr(fixedToday())},
	)
	w := newTestWorkflow(store)

	for _, id := range []string{"on-loan", "maint", "dated"} {
		_, err := w.BorrowRequest(context.Background(), memberActor(), id, BorrowRequestInput{DueBack: fixedToday().AddDate(0, 0, 7)})
		assert.Equal(t, KindNotFound, CodeOf(err), "copy %s", id)
	}
}

// --- ApproveBorrow ---

func TestApproveBorrowRequiresOnLoanStatus(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Status: models.StatusBorrowRequested})
	w := newTestWorkflow(store)

	_, err := w.ApproveBorrow(context.Background(), librarianActor(), "c1", ApproveBorrowInput{Status: models.StatusAvailable})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has(KindInvalidStatusForApproval))
	assert.Equal(t, models.StatusBorrowRequested, store.copies["c1"].Status)
}

func TestApproveBorrowOnNonPendingCopyNotFound(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Status: models.StatusAvailable})
	w := newTestWorkflow(store)

	_, err := w.ApproveBorrow(context.Background(), librarianActor(), "c1", ApproveBorrowInput{Status: models.StatusOnLoan})
	assert.Equal(t, KindNotFound, CodeOf(err))
}

// --- RenewLoan ---

func TestRenewLoanOnlyOnLoan(t *testing.T) {
	store := newFakeStore(
		models.BookCopy{ID: "avail", Status: models.StatusAvailable},
		models.BookCopy{ID: "pending", Status: models.StatusBorrowRequested},
	)
	w := newTestWorkflow(store)

	for _, id := range []string{"avail", "pending"} {
		_, err := w.RenewLoan(context.Background(), librarianActor(), id, RenewLoanInput{DueBack: fixedToday().AddDate(0, 0, 7)})
		assert.Equal(t, KindNotFound, CodeOf(err), "copy %s", id)
	}
}

func TestRenewLoanMovesDueDateOnly(t *testing.T) {
	borrower := "mem-1"
	store := newFakeStore(models.BookCopy{
		ID: "c1", Status: models.StatusOnLoan,
		DueBack: dayPtr(fixedToday().AddDate(0, 0, 2)), BorrowerID: &borrower,
	})
	w := newTestWorkflow(store)

	newDue := fixedToday().AddDate(0, 0, 13)
	bc, err := w.RenewLoan(context.Background(), librarianActor(), "c1", RenewLoanInput{DueBack: newDue})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnLoan, bc.Status)
	assert.Equal(t, *dayPtr(newDue), *bc.DueBack)
	require.NotNil(t, bc.BorrowerID)
	assert.Equal(t, "mem-1", *bc.BorrowerID)
}

// --- MarkReturned ---

func TestMarkReturnedReportsEveryBadField(t *testing.T) {
	borrower := "mem-1"
	store := newFakeStore(models.BookCopy{ID: "c1", Status: models.StatusOnLoan})
	w := newTestWorkflow(store)

	due := fixedToday()
	_, err := w.MarkReturned(context.Background(), librarianActor(), "c1", MarkReturnedInput{
		Status:     models.StatusOnLoan,
		DueBack:    &due,
		BorrowerID: &borrower,
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
	assert.True(t, ve.Has(KindStatusMustBeAvailable))
	assert.True(t, ve.Has(KindDueBackMustBeNull))
	assert.True(t, ve.Has(KindBorrowerMustBeEmpty))
	assert.Zero(t, store.updates)
}

func TestMarkReturnedClearsEverything(t *testing.T) {
	borrower := "mem-1"
	store := newFakeStore(models.BookCopy{
		ID: "c1", Status: models.StatusOnLoan,
		DueBack: dayPtr(fixedToday()), BorrowerID: &borrower,
	})
	w := newTestWorkflow(store)

	bc, err := w.MarkReturned(context.Background(), librarianActor(), "c1", MarkReturnedInput{Status: models.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, bc.Status)
	assert.Nil(t, bc.DueBack)
	assert.Nil(t, bc.BorrowerID)
}

func TestMarkReturnedWorksFromAnyState(t *testing.T) {
	// A compliant request succeeds whatever the copy's current state.
	for _, st := range []models.Status{models.StatusAvailable, models.StatusReserved, models.StatusMaintenance, models.StatusBorrowRequested} {
		store := newFakeStore(models.BookCopy{ID: "c1", Status: st})
		w := newTestWorkflow(store)

		bc, err := w.MarkReturned(context.Background(), librarianActor(), "c1", MarkReturnedInput{Status: models.StatusAvailable})
		require.NoError(t, err, "state %s", st)
		assert.Equal(t, models.StatusAvailable, bc.Status)
	}
}

// --- conflicts and lifecycle ---

func TestUpdateConflictSurfacesAsConflict(t *testing.T) {
	store := newFakeStore(models.BookCopy{ID: "c1", Status: models.StatusOnLoan})
	store.failUpdateWith = ErrConflict
	w := newTestWorkflow(store)

	_, err := w.RenewLoan(context.Background(), librarianActor(), "c1", RenewLoanInput{DueBack: fixedToday().AddDate(0, 0, 7)})
	assert.Equal(t, KindConflict, CodeOf(err))
}

func TestFullLendingLifecycle(t *testing.T) {
	store := newFakeStore()
	w := newTestWorkflow(store)
	ctx := context.Background()

	bc, err := w.CreateCopy(ctx, librarianActor(), CreateCopyInput{Imprint: "3rd ed.", Status: models.StatusAvailable})
	require.NoError(t, err)

	bc, err = w.BorrowRequest(ctx, memberActor(), bc.ID, BorrowRequestInput{DueBack: fixedToday().AddDate(0, 0, 10)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBorrowRequested, bc.Status)

	bc, err = w.ApproveBorrow(ctx, librarianActor(), bc.ID, ApproveBorrowInput{Status: models.StatusOnLoan})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnLoan, bc.Status)
	require.NotNil(t, bc.BorrowerID)
	assert.Equal(t, "mem-1", *bc.BorrowerID)

	bc, err = w.RenewLoan(ctx, librarianActor(), bc.ID, RenewLoanInput{DueBack: fixedToday().AddDate(0, 0, 13)})
	require.NoError(t, err)
	assert.Equal(t, *dayPtr(fixedToday().AddDate(0, 0, 13)), *bc.DueBack)

	bc, err = w.MarkReturned(ctx, librarianActor(), bc.ID, MarkReturnedInput{Status: models.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, bc.Status)
	assert.Nil(t, bc.DueBack)
	assert.Nil(t, bc.BorrowerID)

	// Four state transitions persisted after the create.
	assert.Equal(t, 4, store.updates)
}
