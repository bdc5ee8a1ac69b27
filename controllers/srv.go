// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Workflow  *lending.Workflow
	RDB       *redis.Client
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:      repo,
		AppSess:   a.AppSessions(),
		Workflow:  lending.NewWorkflow(repo, nil),
		RDB:       a.RDB,
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

func newID() string { return uuid.NewString() }

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID string) error {
	_ = s.Repo.TouchUserLogin(ctx, userID) // non-fatal
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// renderError maps workflow errors onto HTTP. Field-level validation
// failures come back as a 400 with one entry per offending field, the way
// the old form pages reported them.
func renderError(c *gin.Context, err error) {
	var ve *lending.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, app.H{"errors": ve.Fields})
		return
	}
	switch lending.CodeOf(err) {
	case lending.KindNotFound:
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case lending.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, app.H{"error": err.Error()})
	case lending.KindForbidden:
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	case lending.KindConflict:
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
