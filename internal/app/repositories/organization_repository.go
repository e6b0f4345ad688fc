package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
	"github.com/volunteersync/backend/internal/pkg/dberrors"
)

// OrganizationRepository handles organization database operations
type OrganizationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const organizationColumns = `id, name, description, website, verified, created_at, updated_at`

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	org := &models.Organization{}
	err := row.Scan(
		&org.ID, &org.Name, &org.Description, &org.Website,
		&org.Verified, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// CreateOrganization creates a new organization
func (r *OrganizationRepository) CreateOrganization(ctx context.Context, org *models.Organization) (int64, error) {
	sql, args, err := r.sb.Insert("organizations").
		Columns("name", "description", "website").
		Values(org.Name, org.Description, org.Website).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "organizations_name_key") {
			return 0, apperrors.ErrOrganizationAlreadyExists
		}
		return 0, fmt.Errorf("error creating organization: %w", err)
	}

	return id, nil
}

// GetOrganizationByID retrieves an organization by ID
func (r *OrganizationRepository) GetOrganizationByID(ctx context.Context, id int64) (*models.Organization, error) {
	org, err := scanOrganization(r.db.QueryRow(ctx, `
		SELECT `+organizationColumns+`
		FROM organizations
		WHERE id = $1`,
		id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}

	return org, nil
}

// UpdateOrganization updates an organization's details
func (r *OrganizationRepository) UpdateOrganization(ctx context.Context, org *models.Organization) error {
	sql, args, err := r.sb.Update("organizations").
		Set("name", org.Name).
		Set("description", org.Description).
		Set("website", org.Website).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": org.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "organizations_name_key") {
			return apperrors.ErrOrganizationAlreadyExists
		}
		return fmt.Errorf("error updating organization: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

// SetVerified marks an organization as verified or not
func (r *OrganizationRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE organizations
		SET verified = $1, updated_at = NOW()
		WHERE id = $2`,
		verified, id)

	if err != nil {
		return fmt.Errorf("error updating organization verification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

// DeleteOrganization removes an organization
func (r *OrganizationRepository) DeleteOrganization(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		var pgErr interface{ SQLState() string }
		if errors.As(err, &pgErr) && pgErr.SQLState() == "23503" {
			return apperrors.ErrOrganizationHasRelations
		}
		return fmt.Errorf("error deleting organization: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

// ListOrganizations retrieves organizations matching the filter with pagination
func (r *OrganizationRepository) ListOrganizations(ctx context.Context, verified *bool, search *string, offset uint64, limit int) ([]*models.Organization, int64, error) {
	base := r.sb.Select(organizationColumns).From("organizations")
	countQuery := r.sb.Select("COUNT(*)").From("organizations")

	if verified != nil {
		base = base.Where(squirrel.Eq{"verified": *verified})
		countQuery = countQuery.Where(squirrel.Eq{"verified": *verified})
	}
	if search != nil && *search != "" {
		like := "%" + *search + "%"
		base = base.Where(squirrel.ILike{"name": like})
		countQuery = countQuery.Where(squirrel.ILike{"name": like})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting organizations: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		orgs = append(orgs, org)
	}

	return orgs, total, nil
}
