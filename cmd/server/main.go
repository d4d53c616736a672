package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"SocialRelay/internal/api/middleware"
	"SocialRelay/internal/api/routes"
	"SocialRelay/internal/ayrshare"
	"SocialRelay/internal/config"
	"SocialRelay/internal/core/platforms"
	"SocialRelay/internal/core/profiles"
	postgresRepo "SocialRelay/internal/db/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	log.Println("Connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: ", err)
	}

	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	log.Println("Migrations completed successfully")

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Rate limiting: 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	// Initialize upstream client, repositories, and services
	upstream := ayrshare.NewClient(cfg.Ayrshare)
	profileRepo := postgresRepo.NewProfileRepository(db)
	preferenceRepo := postgresRepo.NewPreferenceRepository(db)
	profileService := profiles.NewProfileService(profileRepo, upstream)
	platformService := platforms.NewService(preferenceRepo, profileRepo, upstream)

	r.Mount("/profiles", routes.ProfileRoutes(profileService))
	r.Mount("/users", routes.UserRoutes(platformService, profileService))
	routes.RegisterPostRoutes(r, upstream)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("SocialRelay starting on port %s\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, r))
}
