package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskdeck/internal/database"
	"taskdeck/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeTaskRow implements pgx.Row for the task scan shapes:
// 8 dests for GetTaskByID, 1 dest for CreateTask (created_at).
type fakeTaskRow struct {
	scanErr error
	task    *model.Task
}

func (r *fakeTaskRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	tk := r.task
	switch len(dest) {
	case 8:
		*dest[0].(*string) = tk.ID
		*dest[1].(*string) = tk.Title
		*dest[2].(*string) = tk.Description
		*dest[3].(*string) = tk.DueDate
		*dest[4].(*string) = tk.Priority
		*dest[5].(*string) = tk.Status
		*dest[6].(*string) = tk.Email
		*dest[7].(*time.Time) = tk.CreatedAt
	case 1:
		*dest[0].(*time.Time) = tk.CreatedAt
	default:
		panic("fakeTaskRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeTaskRows implements pgx.Rows over a task slice.
type fakeTaskRows struct {
	data    []model.Task
	idx     int
	scanErr error
	err     error
}

func (r *fakeTaskRows) Close()                                       {}
func (r *fakeTaskRows) Err() error                                   { return r.err }
func (r *fakeTaskRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeTaskRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeTaskRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeTaskRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	tk := r.data[r.idx]
	r.idx++
	*dest[0].(*string) = tk.ID
	*dest[1].(*string) = tk.Title
	*dest[2].(*string) = tk.Description
	*dest[3].(*string) = tk.DueDate
	*dest[4].(*string) = tk.Priority
	*dest[5].(*string) = tk.Status
	*dest[6].(*string) = tk.Email
	*dest[7].(*time.Time) = tk.CreatedAt
	return nil
}
func (r *fakeTaskRows) Values() ([]any, error) { return nil, nil }
func (r *fakeTaskRows) RawValues() [][]byte    { return nil }
func (r *fakeTaskRows) Conn() *pgx.Conn        { return nil }

func strPtr(s string) *string { return &s }

func TestCreateTask(t *testing.T) {
	now := time.Now().UTC()
	t.Cleanup(func() { newTaskID = uuid.NewString })

	var insertArgs []any
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			insertArgs = args
			return &fakeTaskRow{task: &model.Task{CreatedAt: now}}
		},
	}

	newTaskID = func() string { return "fixed-id" }
	task := &model.Task{Title: "T1", Description: "D", DueDate: "2024-01-01", Priority: "high", Email: "u@test.com"}
	created, err := CreateTask(context.Background(), db, task)
	require.NoError(t, err)
	require.Equal(t, "fixed-id", created.ID)
	require.Equal(t, model.StatusPending, created.Status)
	require.Equal(t, now, created.CreatedAt)
	require.Equal(t, "fixed-id", insertArgs[0])
	require.Equal(t, "u@test.com", insertArgs[6])

	db.QueryRowFn = func(_ context.Context, _ string, _ ...any) pgx.Row {
		return &fakeTaskRow{scanErr: errors.New("insert")}
	}
	_, err = CreateTask(context.Background(), db, task)
	require.Error(t, err)
}

func TestGetTaskByID(t *testing.T) {
	sample := &model.Task{ID: "t1", Title: "T1", Status: model.StatusPending, Email: "u@test.com"}

	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeTaskRow{task: sample}
		},
	}
	got, err := GetTaskByID(context.Background(), db, "t1")
	require.NoError(t, err)
	require.Equal(t, "u@test.com", got.Email)

	db.QueryRowFn = func(_ context.Context, _ string, _ ...any) pgx.Row {
		return &fakeTaskRow{scanErr: pgx.ErrNoRows}
	}
	_, err = GetTaskByID(context.Background(), db, "missing")
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListTasksByEmail(t *testing.T) {
	now := time.Now().UTC()
	data := []model.Task{
		{ID: "t1", Title: "A", Status: model.StatusPending, Email: "u@test.com", CreatedAt: now},
		{ID: "t2", Title: "B", Status: "Done", Email: "u@test.com", CreatedAt: now},
	}

	db := &database.FakeDB{
		QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			require.Equal(t, "u@test.com", args[0])
			return &fakeTaskRows{data: data}, nil
		},
	}
	tasks, err := ListTasksByEmail(context.Background(), db, "u@test.com")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "t2", tasks[1].ID)

	// empty result is a non-nil empty slice
	db.QueryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeTaskRows{}, nil
	}
	tasks, err = ListTasksByEmail(context.Background(), db, "b@x.com")
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Empty(t, tasks)

	db.QueryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return nil, errors.New("query")
	}
	_, err = ListTasksByEmail(context.Background(), db, "u@test.com")
	require.Error(t, err)

	db.QueryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeTaskRows{data: data, scanErr: errors.New("scan")}, nil
	}
	_, err = ListTasksByEmail(context.Background(), db, "u@test.com")
	require.Error(t, err)

	db.QueryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeTaskRows{err: errors.New("rows")}, nil
	}
	_, err = ListTasksByEmail(context.Background(), db, "u@test.com")
	require.Error(t, err)
}

func TestUpdateTask(t *testing.T) {
	t.Run("empty patch is a no-op", func(t *testing.T) {
		db := &database.FakeDB{} // any Exec would panic
		require.NoError(t, UpdateTask(context.Background(), db, "t1", model.TaskPatch{}))
	})

	t.Run("builds SET clause from set fields only", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				gotArgs = args
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		patch := model.TaskPatch{Status: strPtr("Done")}
		require.NoError(t, UpdateTask(context.Background(), db, "t1", patch))
		require.Contains(t, gotSQL, "status = $1")
		require.NotContains(t, gotSQL, "title")
		require.NotContains(t, gotSQL, "email")
		require.Equal(t, []any{"Done", "t1"}, gotArgs)
	})

	t.Run("multiple fields", func(t *testing.T) {
		var gotSQL string
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				require.Len(t, args, 3)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		patch := model.TaskPatch{Title: strPtr("new"), Priority: strPtr("low")}
		require.NoError(t, UpdateTask(context.Background(), db, "t1", patch))
		require.True(t, strings.Contains(gotSQL, "title = $1") && strings.Contains(gotSQL, "priority = $2"))
	})

	t.Run("absent row", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		err := UpdateTask(context.Background(), db, "missing", model.TaskPatch{Status: strPtr("Done")})
		require.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("exec error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("exec")
			},
		}
		err := UpdateTask(context.Background(), db, "t1", model.TaskPatch{Status: strPtr("Done")})
		require.Error(t, err)
	})
}

func TestDeleteTaskByOwner(t *testing.T) {
	var gotArgs []any
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			gotArgs = args
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
	}
	require.NoError(t, DeleteTaskByOwner(context.Background(), db, "t1", "u@test.com"))
	require.Equal(t, []any{"t1", "u@test.com"}, gotArgs)

	// absent id deletes nothing and still succeeds
	db.ExecFn = func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	require.NoError(t, DeleteTaskByOwner(context.Background(), db, "missing", "u@test.com"))

	db.ExecFn = func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("exec")
	}
	require.Error(t, DeleteTaskByOwner(context.Background(), db, "t1", "u@test.com"))
}
