package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
	"github.com/volunteersync/backend/internal/pkg/dberrors"
)

// RegistrationRepository handles task registration database operations
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const registrationColumns = `id, task_id, user_id, status, application_message, rejection_reason, registered_at, responded_at`

func scanRegistration(row pgx.Row) (*models.TaskRegistration, error) {
	reg := &models.TaskRegistration{}
	err := row.Scan(
		&reg.ID, &reg.TaskID, &reg.UserID, &reg.Status,
		&reg.ApplicationMessage, &reg.RejectionReason,
		&reg.RegisteredAt, &reg.RespondedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// CreateRegistration inserts a PENDING registration. The unique index on
// (user_id, task_id) rejects a second registration for the same pair.
func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg *models.TaskRegistration) (int64, error) {
	sql, args, err := r.sb.Insert("task_registrations").
		Columns("task_id", "user_id", "status", "application_message").
		Values(reg.TaskID, reg.UserID, reg.Status, reg.ApplicationMessage).
		Suffix("RETURNING id, registered_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	var registeredAt time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &registeredAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "task_registrations_user_task_key") {
			return 0, apperrors.ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("error creating registration: %w", err)
	}

	reg.ID = id
	reg.RegisteredAt = registeredAt
	return id, nil
}

// GetRegistrationByID retrieves a registration by ID
func (r *RegistrationRepository) GetRegistrationByID(ctx context.Context, id int64) (*models.TaskRegistration, error) {
	reg, err := scanRegistration(r.db.QueryRow(ctx, `
		SELECT `+registrationColumns+`
		FROM task_registrations
		WHERE id = $1`,
		id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error retrieving registration: %w", err)
	}

	return reg, nil
}

// ExistsByTaskAndUser checks whether the user already has a registration for the task
func (r *RegistrationRepository) ExistsByTaskAndUser(ctx context.Context, taskID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM task_registrations WHERE task_id = $1 AND user_id = $2)`,
		taskID, userID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking registration: %w", err)
	}

	return exists, nil
}

// Approve transitions a PENDING registration to APPROVED and claims a
// volunteer slot on the task in the same transaction. The registration row
// is locked first so concurrent decisions serialize; the conditional slot
// update keeps approvals within max_volunteers.
func (r *RegistrationRepository) Approve(ctx context.Context, id int64) (*models.TaskRegistration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	reg := &models.TaskRegistration{}
	err = tx.QueryRow(ctx, `
		SELECT `+registrationColumns+`
		FROM task_registrations
		WHERE id = $1
		FOR UPDATE`,
		id).Scan(
		&reg.ID, &reg.TaskID, &reg.UserID, &reg.Status,
		&reg.ApplicationMessage, &reg.RejectionReason,
		&reg.RegisteredAt, &reg.RespondedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error locking registration: %w", err)
	}

	if reg.Status != models.RegistrationStatusPending {
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("registration is %s and can no longer be approved", reg.Status))
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE tasks
		SET current_volunteers = current_volunteers + 1, updated_at = NOW()
		WHERE id = $1 AND current_volunteers < max_volunteers`,
		reg.TaskID)
	if err != nil {
		return nil, fmt.Errorf("error reserving task slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrTaskFull
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE task_registrations
		SET status = $1, responded_at = $2
		WHERE id = $3`,
		models.RegistrationStatusApproved, now, id)
	if err != nil {
		return nil, fmt.Errorf("error approving registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	reg.Status = models.RegistrationStatusApproved
	reg.RespondedAt = &now
	return reg, nil
}

// Reject transitions a PENDING registration to REJECTED with an optional reason
func (r *RegistrationRepository) Reject(ctx context.Context, id int64, reason *string) (*models.TaskRegistration, error) {
	now := time.Now()
	reg, err := scanRegistration(r.db.QueryRow(ctx, `
		UPDATE task_registrations
		SET status = $1, rejection_reason = $2, responded_at = $3
		WHERE id = $4 AND status = $5
		RETURNING `+registrationColumns,
		models.RegistrationStatusRejected, reason, now, id, models.RegistrationStatusPending))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row missing entirely vs. row no longer pending
			existing, getErr := r.GetRegistrationByID(ctx, id)
			if getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.NewInvalidStateError(
				fmt.Sprintf("registration is %s and can no longer be rejected", existing.Status))
		}
		return nil, fmt.Errorf("error rejecting registration: %w", err)
	}

	return reg, nil
}

// DeleteRegistration removes a registration row
func (r *RegistrationRepository) DeleteRegistration(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM task_registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}

	return nil
}

// CompleteApprovedByTaskIDs marks approved registrations of the given tasks
// as COMPLETED. Used by the completion sweeper after tasks expire.
func (r *RegistrationRepository) CompleteApprovedByTaskIDs(ctx context.Context, taskIDs []int64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}

	sql, args, err := r.sb.Update("task_registrations").
		Set("status", models.RegistrationStatusCompleted).
		Set("responded_at", squirrel.Expr("COALESCE(responded_at, NOW())")).
		Where(squirrel.Eq{"task_id": taskIDs, "status": models.RegistrationStatusApproved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error completing registrations: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// RegistrationFilter narrows registration list queries
type RegistrationFilter struct {
	Status         *models.RegistrationStatus
	TaskID         *int64
	UserID         *int64
	OrganizationID *int64
}

// ListRegistrations retrieves registrations matching the filter with pagination.
// Filtering by organization joins through tasks.
func (r *RegistrationRepository) ListRegistrations(ctx context.Context, filter RegistrationFilter, offset uint64, limit int) ([]*models.TaskRegistration, int64, error) {
	cols := "r.id, r.task_id, r.user_id, r.status, r.application_message, r.rejection_reason, r.registered_at, r.responded_at"
	base := r.sb.Select(cols).From("task_registrations r")
	countQuery := r.sb.Select("COUNT(*)").From("task_registrations r")

	if filter.OrganizationID != nil {
		base = base.Join("tasks t ON t.id = r.task_id").
			Where(squirrel.Eq{"t.organization_id": *filter.OrganizationID})
		countQuery = countQuery.Join("tasks t ON t.id = r.task_id").
			Where(squirrel.Eq{"t.organization_id": *filter.OrganizationID})
	}
	if filter.Status != nil {
		base = base.Where(squirrel.Eq{"r.status": *filter.Status})
		countQuery = countQuery.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if filter.TaskID != nil {
		base = base.Where(squirrel.Eq{"r.task_id": *filter.TaskID})
		countQuery = countQuery.Where(squirrel.Eq{"r.task_id": *filter.TaskID})
	}
	if filter.UserID != nil {
		base = base.Where(squirrel.Eq{"r.user_id": *filter.UserID})
		countQuery = countQuery.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting registrations: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("r.registered_at DESC", "r.id DESC").
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

	var regs []*models.TaskRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, total, nil
}
