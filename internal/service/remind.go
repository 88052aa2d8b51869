package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/repository"
)

// ReminderNotifier emails patients about reminders they let slip.
type ReminderNotifier struct {
	reminderRepository repository.ReminderRepository
	mailer             Mailer
	now                func() time.Time
}

func NewReminderNotifier(reminderRepository repository.ReminderRepository, mailer Mailer) *ReminderNotifier {
	return &ReminderNotifier{
		reminderRepository: reminderRepository,
		mailer:             mailer,
		now:                time.Now,
	}
}

type overdueBatch struct {
	email     string
	name      string
	reminders []*model.Reminder
}

// NotifyOverdue sends one email per patient listing their overdue
// reminders and returns how many emails went out. A failed send is logged
// and does not stop the run.
func (n *ReminderNotifier) NotifyOverdue(ctx context.Context) (int, error) {
	overdue, err := n.reminderRepository.Overdue(ctx, n.now())
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue reminders: %w", err)
	}

	var batches []*overdueBatch
	byPatient := map[string]*overdueBatch{}
	for _, o := range overdue {
		b, ok := byPatient[o.UserID]
		if !ok {
			b = &overdueBatch{email: o.PatientEmail, name: o.PatientName}
			byPatient[o.UserID] = b
			batches = append(batches, b)
		}
		reminder := o.Reminder
		b.reminders = append(b.reminders, &reminder)
	}

	sent := 0
	var errs []error
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		err := n.mailer.SendOverdueReminders(ctx, b.email, b.name, b.reminders)
		if err != nil {
			slog.Error("failed to send overdue reminders", "error", err, "email", b.email)
			errs = append(errs, err)
			continue
		}
		sent++
	}

	slog.Info("overdue reminders processed", "patients", len(batches), "sent", sent)
	return sent, errors.Join(errs...)
}
