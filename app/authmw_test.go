package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/copies", nil)
	return c, w
}

func setActor(c *gin.Context, id string, perms ...string) {
	c.Set("userID", id)
	c.Set("actor", lending.Actor{ID: id, Perms: lending.NewPermissionSet(perms...)})
}

func TestRequireOpAnonymousIs401(t *testing.T) {
	c, w := testCtx(t)
	RequireOp(lending.OpViewLoans)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireOpViewLoansRejectsMember(t *testing.T) {
	c, w := testCtx(t)
	setActor(c, "mem-1", models.PermCanBorrow)
	RequireOp(lending.OpViewLoans)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireOpViewLoansPassesLibrarian(t *testing.T) {
	c, _ := testCtx(t)
	setActor(c, "lib-1", models.PermCanMarkReturned, models.PermCanRenew, models.PermCanBorrow)
	RequireOp(lending.OpViewLoans)(c)
	assert.False(t, c.IsAborted())
}

func TestLibrarianOnlyRejectsMember(t *testing.T) {
	c, w := testCtx(t)
	setActor(c, "mem-1", models.PermCanBorrow)
	LibrarianOnly()(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
