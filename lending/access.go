// lending/access.go
package lending

import "Gin_postgres_redis_library_lending/models"

// Operation names every action the access policy gates.
type Operation string

const (
	OpCreateCopy    Operation = "create_copy"
	OpUpdateCopy    Operation = "update_copy"
	OpDeleteCopy    Operation = "delete_copy"
	OpBorrowRequest Operation = "borrow_request"
	OpApproveBorrow Operation = "approve_borrow"
	OpRenewLoan     Operation = "renew_loan"
	OpMarkReturned  Operation = "mark_returned"

	// Catalog management (authors, genres, languages, books) and the
	// librarian-only copy listings share the catch-all permission.
	OpManageCatalog Operation = "manage_catalog"
	OpViewLoans     Operation = "view_loans"
)

// requiredPermission is the single source of truth for who may call what.
// Handlers must not test permission strings themselves.
var requiredPermission = map[Operation]string{
	OpCreateCopy:    models.PermCanMarkReturned,
	OpUpdateCopy:    models.PermCanMarkReturned,
	OpDeleteCopy:    models.PermCanMarkReturned,
	OpMarkReturned:  models.PermCanMarkReturned,
	OpManageCatalog: models.PermCanMarkReturned,
	OpViewLoans:     models.PermCanMarkReturned,
	OpApproveBorrow: models.PermCanRenew,
	OpRenewLoan:     models.PermCanRenew,
	OpBorrowRequest: models.PermCanBorrow,
}

type PermissionSet map[string]struct{}

func NewPermissionSet(perms ...string) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

func (s PermissionSet) Has(perm string) bool {
	_, ok := s[perm]
	return ok
}

// Actor is the authenticated caller as seen by the workflow. A zero Actor
// means "not authenticated".
type Actor struct {
	ID    string
	Perms PermissionSet
}

// Authorize decides whether the actor may invoke the operation.
// Authentication is checked before the permission lookup so an anonymous
// caller is told to log in rather than that it lacks a permission.
func Authorize(actor Actor, op Operation) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	perm, ok := requiredPermission[op]
	if !ok || !actor.Perms.Has(perm) {
		return ErrForbidden
	}
	return nil
}
