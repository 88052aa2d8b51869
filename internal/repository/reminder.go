package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wellpath/portal/internal/model"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
)

type ReminderRepository interface {
	Reminders(ctx context.Context, userID string) ([]*model.Reminder, error)
	Complete(ctx context.Context, userID, reminderID string) error
	Overdue(ctx context.Context, now time.Time) ([]*model.OverdueReminder, error)
}

type reminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func insertReminder(ctx context.Context, db sqlx.ExecerContext, reminder *model.Reminder) error {
	query := `INSERT INTO reminders (id, user_id, position, title, description, due_date, completed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := db.ExecContext(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.Position,
		reminder.Title,
		reminder.Description,
		reminder.DueDate,
		reminder.Completed,
		reminder.CreatedAt,
	)
	return err
}

func (r *reminderRepository) Reminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	reminders := []*model.Reminder{}
	query := `SELECT * FROM reminders WHERE user_id = $1 ORDER BY position ASC`

	err := r.db.SelectContext(ctx, &reminders, query, userID)
	if err != nil {
		return nil, err
	}

	return reminders, nil
}

// Complete marks the reminder done. Completing it again matches the same row
// and succeeds without changing anything.
func (r *reminderRepository) Complete(ctx context.Context, userID, reminderID string) error {
	query := `UPDATE reminders SET completed = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, reminderID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// Overdue lists open reminders due strictly before now for every patient,
// grouped by patient. The due-date comparison runs in Go so it does not
// depend on how the driver stores timestamps.
func (r *reminderRepository) Overdue(ctx context.Context, now time.Time) ([]*model.OverdueReminder, error) {
	var open []*model.OverdueReminder
	query := `SELECT r.*, u.name AS patient_name, u.email AS patient_email
	          FROM reminders r
	          JOIN users u ON u.id = r.user_id
	          WHERE r.completed = FALSE AND r.due_date IS NOT NULL AND u.role = $1
	          ORDER BY r.user_id, r.position ASC`

	err := r.db.SelectContext(ctx, &open, query, string(model.RolePatient))
	if err != nil {
		return nil, err
	}

	overdue := []*model.OverdueReminder{}
	for _, o := range open {
		if o.IsOverdue(now) {
			overdue = append(overdue, o)
		}
	}

	return overdue, nil
}
