package model

import "time"

type Reminder struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Position    int        `db:"position" json:"-"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	Completed   bool       `db:"completed" json:"completed"`
	CreatedAt   time.Time  `db:"created_at" json:"-"`
}

// IsOverdue reports whether the reminder is due strictly before now and still open.
func (r *Reminder) IsOverdue(now time.Time) bool {
	return r.DueDate != nil && r.DueDate.Before(now) && !r.Completed
}

// NewAnnualWellnessCheck is the reminder every patient starts with, due on
// December 31 of the given time's year.
func NewAnnualWellnessCheck(now time.Time) *Reminder {
	description := "Schedule your yearly preventive checkup."
	due := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	return &Reminder{
		Title:       "Annual Wellness Check",
		Description: &description,
		DueDate:     &due,
	}
}

// OverdueReminder is an open reminder joined with its patient's contact details.
type OverdueReminder struct {
	Reminder
	PatientName  string `db:"patient_name"`
	PatientEmail string `db:"patient_email"`
}
