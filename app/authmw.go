package app

import (
	"net/http"

	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// AuthRequired resolves the session cookie to a user and stashes the
// lending.Actor in the request context. Handlers never look at cookies.
func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// Confirm the user still exists and derive permissions once.
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("actor", lending.Actor{
			ID:    u.ID,
			Perms: lending.NewPermissionSet(u.Permissions()...),
		})

		c.Next()
	}
}

// ActorFrom returns the authenticated actor, zero when the request never
// went through AuthRequired.
func ActorFrom(c *gin.Context) lending.Actor {
	if v, ok := c.Get("actor"); ok {
		if a, ok := v.(lending.Actor); ok {
			return a
		}
	}
	return lending.Actor{}
}

// RequireOp guards a route group with one operation from the central access
// table, rather than testing permission strings here.
func RequireOp(op lending.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := lending.Authorize(ActorFrom(c), op); err != nil {
			if lending.CodeOf(err) == lending.KindUnauthenticated {
				c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// LibrarianOnly guards the admin route groups.
func LibrarianOnly() gin.HandlerFunc {
	return RequireOp(lending.OpManageCatalog)
}
