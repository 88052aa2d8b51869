package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellpath/portal/internal/model"
)

func TestNotifyOverdue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, model.RolePatient, "late@example.com")
	env.register(t, model.RolePatient, "later@example.com")
	done := env.register(t, model.RolePatient, "done@example.com").User
	env.register(t, model.RoleProvider, "doc@example.com")

	dash, err := env.patients.Dashboard(ctx, done.ID)
	require.NoError(t, err)
	_, err = env.patients.CompleteReminder(ctx, done.ID, dash.Reminders[0].ID)
	require.NoError(t, err)

	sent, err := env.notifier.NotifyOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent, "nothing is due yet")

	env.notifier.now = func() time.Time { return time.Now().AddDate(1, 0, 0) }

	sent, err = env.notifier.NotifyOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, map[string][]string{
		"late@example.com":  {"Annual Wellness Check"},
		"later@example.com": {"Annual Wellness Check"},
	}, env.mailer.overdue)
}

func TestNotifyOverdue_SendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, model.RolePatient, "late@example.com")

	env.mailer.fail = true
	env.notifier.now = func() time.Time { return time.Now().AddDate(1, 0, 0) }

	sent, err := env.notifier.NotifyOverdue(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, sent)
}
