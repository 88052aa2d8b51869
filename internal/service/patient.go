package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wellpath/portal/internal/metrics"
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/repository"
	"github.com/wellpath/portal/internal/validation"
)

type Dashboard struct {
	Goals     []*model.Goal
	Reminders []*model.Reminder
}

// ProfileUpdate carries only the fields the client sent. Nil keeps the
// stored value.
type ProfileUpdate struct {
	Name        *string `json:"name"`
	Allergies   *string `json:"allergies"`
	Medications *string `json:"medications"`
}

type PatientService struct {
	accounts
	now func() time.Time
}

func NewPatientService(
	userRepository repository.UserRepository,
	goalRepository repository.GoalRepository,
	reminderRepository repository.ReminderRepository,
) *PatientService {
	return &PatientService{
		accounts: accounts{
			userRepository:     userRepository,
			goalRepository:     goalRepository,
			reminderRepository: reminderRepository,
		},
		now: time.Now,
	}
}

func (s *PatientService) Dashboard(ctx context.Context, patientID string) (*Dashboard, error) {
	patient, err := s.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Goals: patient.Goals, Reminders: patient.Reminders}, nil
}

// LogGoalValue appends a log stamped now and returns all of the patient's
// goals. The value is stored as given.
func (s *PatientService) LogGoalValue(ctx context.Context, patientID, goalID string, value float64) ([]*model.Goal, error) {
	_, err := s.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	goal, err := s.goalRepository.ByID(ctx, patientID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, errGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	entry := &model.GoalLog{
		ID:     uuid.New().String(),
		GoalID: goal.ID,
		Value:  value,
		Date:   s.now(),
	}
	err = s.goalRepository.AppendLog(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to append log: %w", err)
	}

	metrics.GoalLogs.WithLabelValues(string(goal.Type)).Inc()
	slog.Debug("goal value logged", "user_id", patientID, "goal_id", goal.ID, "value", value)

	goals, err := s.goalRepository.Goals(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	return goals, nil
}

// CompleteReminder is idempotent: completing a completed reminder succeeds.
func (s *PatientService) CompleteReminder(ctx context.Context, patientID, reminderID string) ([]*model.Reminder, error) {
	_, err := s.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	err = s.reminderRepository.Complete(ctx, patientID, reminderID)
	if errors.Is(err, repository.ErrReminderNotFound) {
		return nil, errReminderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete reminder: %w", err)
	}

	reminders, err := s.reminderRepository.Reminders(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	return reminders, nil
}

func (s *PatientService) Profile(ctx context.Context, patientID string) (*model.User, error) {
	patient, err := s.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &patient.User, nil
}

func (s *PatientService) UpdateProfile(ctx context.Context, patientID string, update ProfileUpdate) (*model.User, error) {
	patient, err := s.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	user := &patient.User

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		err = validation.ValidateName(name)
		if err != nil {
			return nil, newError(ErrValidation, err.Error())
		}
		user.Name = name
	}
	if update.Allergies != nil {
		user.Allergies = strings.TrimSpace(*update.Allergies)
	}
	if update.Medications != nil {
		user.Medications = strings.TrimSpace(*update.Medications)
	}

	err = s.userRepository.UpdateProfile(ctx, user)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
