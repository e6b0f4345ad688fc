package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/volunteersync/backend/internal/app/models"
	appRepos "github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
)

const (
	defaultAdminEmail    = "admin@volunteersync.org"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the default system administrator and a sample
// organization if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	organizationRepo := appRepos.NewOrganizationRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Sample Organization --- //
	sampleOrg := &appModels.Organization{
		Name:        "Community Outreach",
		Description: "General purpose community volunteering organization",
		Verified:    true,
	}
	if _, err := organizationRepo.CreateOrganization(ctx, sampleOrg); err != nil {
		if !errors.Is(err, apperrors.ErrOrganizationAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating sample organization")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default System Administrator --- //
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}

	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  string(hashedPassword),
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleSystemAdmin,
		IsActive:  true,
	}

	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
