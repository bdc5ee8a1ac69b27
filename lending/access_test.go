package lending

import (
	"testing"

	"Gin_postgres_redis_library_lending/models"

	"github.com/stretchr/testify/assert"
)

func librarianActor() Actor {
	return Actor{
		ID: "lib-1",
		Perms: NewPermissionSet(
			models.PermCanMarkReturned,
			models.PermCanRenew,
			models.PermCanBorrow,
		),
	}
}

func memberActor() Actor {
	return Actor{ID: "mem-1", Perms: NewPermissionSet(models.PermCanBorrow)}
}

func TestAuthorizeAnonymousIsUnauthenticated(t *testing.T) {
	// Anonymous callers get "log in", not "forbidden", for every operation.
	ops := []Operation{
		OpCreateCopy, OpUpdateCopy, OpDeleteCopy, OpBorrowRequest,
		OpApproveBorrow, OpRenewLoan, OpMarkReturned, OpManageCatalog, OpViewLoans,
	}
	for _, op := range ops {
		err := Authorize(Actor{}, op)
		assert.Equal(t, KindUnauthenticated, CodeOf(err), "op %s", op)
	}
}

func TestAuthorizeMember(t *testing.T) {
	m := memberActor()

	assert.NoError(t, Authorize(m, OpBorrowRequest))

	for _, op := range []Operation{
		OpCreateCopy, OpUpdateCopy, OpDeleteCopy,
		OpApproveBorrow, OpRenewLoan, OpMarkReturned,
		OpManageCatalog, OpViewLoans,
	} {
		err := Authorize(m, op)
		assert.Equal(t, KindForbidden, CodeOf(err), "op %s", op)
	}
}

func TestAuthorizeLibrarian(t *testing.T) {
	l := librarianActor()
	for _, op := range []Operation{
		OpCreateCopy, OpUpdateCopy, OpDeleteCopy, OpBorrowRequest,
		OpApproveBorrow, OpRenewLoan, OpMarkReturned, OpManageCatalog, OpViewLoans,
	} {
		assert.NoError(t, Authorize(l, op), "op %s", op)
	}
}

func TestAuthorizeUnknownOperationIsForbidden(t *testing.T) {
	err := Authorize(librarianActor(), Operation("drop_tables"))
	assert.Equal(t, KindForbidden, CodeOf(err))
}
