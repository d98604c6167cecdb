package store

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/database"
	"taskdeck/internal/model"

	"github.com/google/uuid"
)

// newTaskID generates task ids; tests may override it.
var newTaskID = uuid.NewString

// CreateTask inserts a task, generating its id and stamping status/owner.
// The caller fills Title/Description/DueDate/Priority/Email; Status is
// forced to Pending here.
func CreateTask(ctx context.Context, db database.DB, t *model.Task) (*model.Task, error) {
	t.ID = newTaskID()
	t.Status = model.StatusPending
	row := db.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, due_date, priority, status, email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		t.ID,
		t.Title,
		t.Description,
		t.DueDate,
		t.Priority,
		t.Status,
		t.Email,
	)
	if err := row.Scan(&t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	return t, nil
}

func GetTaskByID(ctx context.Context, db database.DB, id string) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, description, due_date, priority, status, email, created_at
		 FROM tasks WHERE id = $1`,
		id,
	)
	t := &model.Task{}
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Priority,
		&t.Status,
		&t.Email,
		&t.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("GetTaskByID: %w", err)
	}
	return t, nil
}

// ListTasksByEmail returns every task owned by email, in store order.
func ListTasksByEmail(ctx context.Context, db database.DB, email string) ([]model.Task, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, description, due_date, priority, status, email, created_at
		 FROM tasks WHERE email = $1`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTasksByEmail: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.DueDate,
			&t.Priority,
			&t.Status,
			&t.Email,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListTasksByEmail: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTasksByEmail: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial merge of patch onto the stored row. Only the
// set fields make it into the SET clause; id and owner email never do.
func UpdateTask(ctx context.Context, db database.DB, id string, patch model.TaskPatch) error {
	if patch.IsZero() {
		return nil
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(col string, val string) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("UpdateTask: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTaskByOwner removes a task only when it belongs to email. Deleting
// an absent id (or someone else's) is a no-op, not an error.
func DeleteTaskByOwner(ctx context.Context, db database.DB, id, email string) error {
	_, err := db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND email = $2`,
		id,
		email,
	)
	if err != nil {
		return fmt.Errorf("DeleteTaskByOwner: %w", err)
	}
	return nil
}
