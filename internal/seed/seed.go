package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/avdeyev/eduboard/internal/app/models"
	appRepos "github.com/avdeyev/eduboard/internal/app/repositories"
	"github.com/avdeyev/eduboard/internal/config"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
	pkgAuth "github.com/avdeyev/eduboard/internal/pkg/auth"
)

// CreateDefaultData ensures the role rows the access policy refers to exist
// and provisions a demo admin account on a fresh database. Existing rows are
// left untouched, so running it on every startup is safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (roles, demo accounts)...")
	var finalErr error

	// Role rows for every name the policy recognizes. Course-level roles
	// share the same namespace so one pass covers both scopes.
	roleNames := make([]string, 0, 8)
	roleNames = append(roleNames, cfg.Dashboard.AdminRoles...)
	roleNames = append(roleNames, cfg.Dashboard.TeacherRoles...)
	roleNames = append(roleNames, cfg.Dashboard.StudentRoles...)
	for _, name := range roleNames {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO roles (shortname) VALUES ($1) ON CONFLICT (shortname) DO NOTHING`, name); err != nil {
			lgr.Error().Err(err).Str("role", name).Msg("Error seeding role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Demo admin account.
	_, err := userRepo.GetByUsername(ctx, "admin")
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		hashed, hashErr := pkgAuth.HashPassword("Admin123!")
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}

		admin := &appModels.User{
			Username:    "admin",
			Password:    hashed,
			FirstName:   "System",
			LastName:    "Administrator",
			Email:       "admin@eduboard.local",
			IsSiteAdmin: true,
			IsActive:    true,
		}
		if createErr := userRepo.Create(ctx, admin); createErr != nil {
			lgr.Error().Err(createErr).Msg("Error creating admin user")
			finalErr = errors.Join(finalErr, createErr)
			break
		}

		if len(cfg.Dashboard.AdminRoles) > 0 {
			if assignErr := userRepo.AssignSystemRole(ctx, admin.ID, cfg.Dashboard.AdminRoles[0]); assignErr != nil {
				lgr.Error().Err(assignErr).Msg("Error assigning admin role")
				finalErr = errors.Join(finalErr, assignErr)
			}
		}
		lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	default:
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
