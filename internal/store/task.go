package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jklemm/hearthside/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, user_id, title, notes, due_date, completed_at, created_at`

// normalizeDue stores due dates in UTC so they compare correctly against
// the day windows TodayProgress builds.
func normalizeDue(dueDate *time.Time) *time.Time {
	if dueDate == nil {
		return nil
	}
	u := dueDate.UTC()
	return &u
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(&t.ID, &t.UserID, &t.Title, &t.Notes, &t.DueDate, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaskStore) Create(userID int64, title, notes string, dueDate *time.Time) (*model.Task, error) {
	dueDate = normalizeDue(dueDate)
	result, err := s.db.Exec(
		`INSERT INTO tasks (user_id, title, notes, due_date, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, title, notes, dueDate, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id, userID)
}

func (s *TaskStore) Get(id, userID int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) ListByUser(userID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE user_id = ? ORDER BY completed_at IS NOT NULL, due_date IS NULL, due_date, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(id, userID int64, title, notes string, dueDate *time.Time) (*model.Task, error) {
	dueDate = normalizeDue(dueDate)
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, notes = ?, due_date = ? WHERE id = ? AND user_id = ?`,
		title, notes, dueDate, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.Get(id, userID)
}

func (s *TaskStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Complete marks a task done at the given time.
func (s *TaskStore) Complete(id, userID int64, at time.Time) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET completed_at = ? WHERE id = ? AND user_id = ?`,
		at.UTC(), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return s.Get(id, userID)
}

// Uncomplete clears a task's completion.
func (s *TaskStore) Uncomplete(id, userID int64) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET completed_at = NULL WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("uncomplete task: %w", err)
	}
	return s.Get(id, userID)
}

// TodayProgress counts the user's tasks in play for the given day and how
// many of them were completed within it. In play means due that day, or
// undated and created that day; completions stamped on an earlier day do
// not count. The day boundaries follow day's location.
func (s *TaskStore) TodayProgress(userID int64, day time.Time) (done, total int, err error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location()).UTC()
	end := start.Add(24 * time.Hour)

	err = s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed_at >= ? AND completed_at < ?), 0)
		 FROM tasks
		 WHERE user_id = ?
		   AND ((due_date >= ? AND due_date < ?)
		     OR (due_date IS NULL AND created_at >= ? AND created_at < ?))`,
		start, end, userID, start, end, start, end,
	).Scan(&total, &done)
	if err != nil {
		return 0, 0, fmt.Errorf("today progress: %w", err)
	}
	return done, total, nil
}
