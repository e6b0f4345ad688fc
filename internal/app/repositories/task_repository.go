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
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const taskColumns = `id, organization_id, created_by, title, description, location, start_date, end_date, status, max_volunteers, current_volunteers, required_skills, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID, &task.OrganizationID, &task.CreatedBy, &task.Title,
		&task.Description, &task.Location, &task.StartDate, &task.EndDate,
		&task.Status, &task.MaxVolunteers, &task.CurrentVolunteers,
		&task.RequiredSkills, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask creates a new task
func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) (int64, error) {
	sql, args, err := r.sb.Insert("tasks").
		Columns("organization_id", "created_by", "title", "description", "location",
			"start_date", "end_date", "status", "max_volunteers", "required_skills").
		Values(task.OrganizationID, task.CreatedBy, task.Title, task.Description, task.Location,
			task.StartDate, task.EndDate, task.Status, task.MaxVolunteers, task.RequiredSkills).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating task: %w", err)
	}

	return id, nil
}

// GetTaskByID retrieves a task by ID
func (r *TaskRepository) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1`,
		id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}

	return task, nil
}

// UpdateTask updates a task's details
func (r *TaskRepository) UpdateTask(ctx context.Context, task *models.Task) error {
	sql, args, err := r.sb.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("location", task.Location).
		Set("start_date", task.StartDate).
		Set("end_date", task.EndDate).
		Set("max_volunteers", task.MaxVolunteers).
		Set("required_skills", task.RequiredSkills).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// UpdateStatus transitions a task to a new lifecycle status
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2`,
		status, id)

	if err != nil {
		return fmt.Errorf("error updating task status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task
func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// CompleteTasks marks the given tasks COMPLETED. Used by the completion
// sweeper after their end dates pass.
func (r *TaskRepository) CompleteTasks(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, err := r.sb.Update("tasks").
		Set("status", models.TaskStatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids, "status": models.TaskStatusActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error completing tasks: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// ListExpiredActiveTaskIDs returns ACTIVE tasks whose end date has passed
func (r *TaskRepository) ListExpiredActiveTaskIDs(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM tasks
		WHERE status = $1 AND end_date < $2`,
		models.TaskStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("error listing expired tasks: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ListTasks retrieves tasks matching the filter with pagination
func (r *TaskRepository) ListTasks(ctx context.Context, organizationID *int64, status *models.TaskStatus, search *string, offset uint64, limit int) ([]*models.Task, int64, error) {
	base := r.sb.Select(taskColumns).From("tasks")
	countQuery := r.sb.Select("COUNT(*)").From("tasks")

	if organizationID != nil {
		base = base.Where(squirrel.Eq{"organization_id": *organizationID})
		countQuery = countQuery.Where(squirrel.Eq{"organization_id": *organizationID})
	}
	if status != nil {
		base = base.Where(squirrel.Eq{"status": *status})
		countQuery = countQuery.Where(squirrel.Eq{"status": *status})
	}
	if search != nil && *search != "" {
		like := "%" + *search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"title": like},
			squirrel.ILike{"description": like},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting tasks: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("start_date ASC", "id ASC").
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

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, total, nil
}
