package main

import (
	"context"
	"log"
	"os"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/config"
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	// First librarian invite on a fresh database.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	app.BootstrapFirstLibrarian(ctx, application.Config, db.NewRepo(application.DB))
	cancel()

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
