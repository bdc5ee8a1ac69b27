// controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func GetAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /auth/signup
// Signup is invite-only: the token from the invitation mail confirms the
// email address and fixes the role.
func (ac *AuthController) Signup(c *gin.Context) {
	var in struct {
		InviteToken string `json:"inviteToken" binding:"required"`
		Username    string `json:"username" binding:"required,email"`
		DisplayName string `json:"displayName"`
		Password    string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	username := strings.ToLower(strings.TrimSpace(in.Username))

	inv, err := ac.Repo.GetInviteByToken(ctx, in.InviteToken)
	if err != nil {
		c.JSON(http.StatusForbidden, app.H{"error": "invalid invite token"})
		return
	}
	if inv.UsedAt != nil || time.Now().After(inv.ExpiresAt) {
		c.JSON(http.StatusForbidden, app.H{"error": "invite expired or already used"})
		return
	}
	if !strings.EqualFold(inv.Email, username) {
		c.JSON(http.StatusForbidden, app.H{"error": "invite was issued for a different email"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	display := strings.TrimSpace(in.DisplayName)
	if display == "" {
		display = username
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  display,
		PasswordHash: hash,
		Role:         inv.Role,
	}
	if err := ac.Repo.CreateUser(ctx, u); err != nil {
		c.JSON(http.StatusConflict, app.H{"error": "username already taken"})
		return
	}
	if err := ac.Repo.MarkInviteUsed(ctx, inv.Token); err != nil {
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		return
	}

	if err := ac.issueSession(ctx, c.Writer, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	u, err := ac.Repo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := ac.issueSession(ctx, c.Writer, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /auth/whoami
func (ac *AuthController) Whoami(c *gin.Context) {
	v, _ := c.Get("userID")
	uid, _ := v.(string)

	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"user":        u,
		"permissions": u.Permissions(),
	})
}
