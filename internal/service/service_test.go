package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wellpath/portal/internal/db/dbtest"
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/repository"
)

const testSecret = "test-secret"

type fakeMailer struct {
	mu       sync.Mutex
	fail     bool
	welcomed []string
	overdue  map[string][]string
}

func (m *fakeMailer) SendWelcome(_ context.Context, email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.welcomed = append(m.welcomed, email)
	return nil
}

func (m *fakeMailer) SendOverdueReminders(_ context.Context, email, _ string, reminders []*model.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	if m.overdue == nil {
		m.overdue = map[string][]string{}
	}
	for _, r := range reminders {
		m.overdue[email] = append(m.overdue[email], r.Title)
	}
	return nil
}

type testEnv struct {
	auth        *AuthService
	patients    *PatientService
	providers   *ProviderService
	notifier    *ReminderNotifier
	mailer      *fakeMailer
	assignments repository.AssignmentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := dbtest.New(t)

	users := repository.NewUserRepository(database)
	goals := repository.NewGoalRepository(database)
	reminders := repository.NewReminderRepository(database)
	assignments := repository.NewAssignmentRepository(database)
	mailer := &fakeMailer{}

	return &testEnv{
		auth:        NewAuthService(users, goals, reminders, assignments, mailer, testSecret, 8*time.Hour),
		patients:    NewPatientService(users, goals, reminders),
		providers:   NewProviderService(users, goals, reminders, assignments),
		notifier:    NewReminderNotifier(reminders, mailer),
		mailer:      mailer,
		assignments: assignments,
	}
}

func (e *testEnv) register(t *testing.T, role model.Role, email string) *AuthResult {
	t.Helper()
	res, err := e.auth.Register(context.Background(), RegisterInput{
		Name:         "User " + email,
		Email:        email,
		Password:     "Patient123!",
		Role:         string(role),
		ConsentGiven: true,
		Allergies:    "None",
		Medications:  "Vitamin D",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) assign(t *testing.T, providerID, patientID string) {
	t.Helper()
	require.NoError(t, e.assignments.Assign(context.Background(), providerID, patientID))
}

func requireClass(t *testing.T, err error, class error, message string) {
	t.Helper()
	require.ErrorIs(t, err, class)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, message, se.Message)
}
