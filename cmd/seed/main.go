// Command seed provisions the default faculty account. Signup only ever
// creates students, so the first faculty user has to come from here.
// Idempotent: exits cleanly when a faculty account already exists.
package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/infrastructure/config"
	mongodb "github.com/campusworks/project-portal/internal/infrastructure/db/mongo"
	"github.com/campusworks/project-portal/pkg/logger"
)

const (
	defaultFacultyName     = "Faculty Admin"
	defaultFacultyEmail    = "faculty@example.edu"
	defaultFacultyPassword = "admin123"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	if existing, err := users.FindFirstByRole(ctx, domain.RoleFaculty); err == nil {
		log.Info().Str("email", existing.Email).Msg("faculty user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultFacultyPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	faculty, err := users.Create(ctx, &domain.User{
		Name:         defaultFacultyName,
		Email:        defaultFacultyEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleFaculty,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("faculty creation failed")
	}

	log.Info().Str("email", faculty.Email).Msg("faculty user created")
}
