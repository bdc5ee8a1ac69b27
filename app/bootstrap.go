// app/bootstrap.go
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/models"
)

// BootstrapFirstLibrarian creates a one-time librarian invite when the
// database has no librarian yet, so a fresh deployment can be claimed.
func BootstrapFirstLibrarian(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" {
		return
	}
	n, err := repo.CountLibrarians(ctx)
	if err != nil {
		log.Printf("bootstrap: count librarians failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)

	if _, err := repo.CreateInvite(ctx, cfg.BootstrapEmail, token, models.RoleLibrarian,
		time.Now().Add(24*time.Hour), "bootstrap"); err != nil {
		log.Printf("bootstrap invite failed: %v", err)
		return
	}

	link := fmt.Sprintf("%s/signup?inviteToken=%s", cfg.WebOrigin, token)
	log.Printf("[BOOTSTRAP] No librarian found, created a librarian invite for %s", cfg.BootstrapEmail)
	log.Printf("[BOOTSTRAP] Open this URL to register the first librarian: %s", link)
}
