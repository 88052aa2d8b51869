package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/repository"
)

type PatientSummary struct {
	ID     string
	Name   string
	Email  string
	Status PatientStatus
}

type ProviderService struct {
	accounts
	now func() time.Time
}

func NewProviderService(
	userRepository repository.UserRepository,
	goalRepository repository.GoalRepository,
	reminderRepository repository.ReminderRepository,
	assignmentRepository repository.AssignmentRepository,
) *ProviderService {
	return &ProviderService{
		accounts: accounts{
			userRepository:       userRepository,
			goalRepository:       goalRepository,
			reminderRepository:   reminderRepository,
			assignmentRepository: assignmentRepository,
		},
		now: time.Now,
	}
}

// PatientSummaries lists the provider's assigned patients in assignment
// order. Patients deleted since assignment are skipped.
func (s *ProviderService) PatientSummaries(ctx context.Context, providerID string) ([]*PatientSummary, error) {
	ids, err := s.assignmentRepository.PatientIDs(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned patients: %w", err)
	}

	now := s.now()
	summaries := make([]*PatientSummary, 0, len(ids))
	for _, id := range ids {
		patient, err := s.patient(ctx, id)
		if errors.Is(err, errUserNotFound) {
			slog.Warn("assigned patient missing", "provider_id", providerID, "patient_id", id)
			continue
		}
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, &PatientSummary{
			ID:     patient.ID,
			Name:   patient.Name,
			Email:  patient.Email,
			Status: DeriveStatus(patient, now),
		})
	}

	return summaries, nil
}

func (s *ProviderService) PatientDetail(ctx context.Context, providerID, patientID string) (*model.Patient, error) {
	assigned, err := s.assignmentRepository.IsAssigned(ctx, providerID, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, errPatientNotAssigned
	}

	patient, err := s.patient(ctx, patientID)
	if errors.Is(err, errUserNotFound) {
		return nil, errPatientNotAssigned
	}
	return patient, err
}

// Assign links a patient to a provider by email. Repeating it is a no-op.
func (s *ProviderService) Assign(ctx context.Context, providerEmail, patientEmail string) error {
	provider, patient, err := s.pair(ctx, providerEmail, patientEmail)
	if err != nil {
		return err
	}

	err = s.assignmentRepository.Assign(ctx, provider.ID, patient.ID)
	if err != nil {
		return fmt.Errorf("failed to assign patient: %w", err)
	}

	slog.Info("patient assigned", "provider_id", provider.ID, "patient_id", patient.ID)
	return nil
}

func (s *ProviderService) Unassign(ctx context.Context, providerEmail, patientEmail string) error {
	provider, patient, err := s.pair(ctx, providerEmail, patientEmail)
	if err != nil {
		return err
	}

	err = s.assignmentRepository.Unassign(ctx, provider.ID, patient.ID)
	if err != nil {
		return fmt.Errorf("failed to unassign patient: %w", err)
	}

	slog.Info("patient unassigned", "provider_id", provider.ID, "patient_id", patient.ID)
	return nil
}

func (s *ProviderService) pair(ctx context.Context, providerEmail, patientEmail string) (*model.User, *model.User, error) {
	provider, err := s.byEmail(ctx, providerEmail, model.RoleProvider)
	if err != nil {
		return nil, nil, err
	}

	patient, err := s.byEmail(ctx, patientEmail, model.RolePatient)
	if err != nil {
		return nil, nil, err
	}

	return provider, patient, nil
}

func (s *ProviderService) byEmail(ctx context.Context, email string, role model.Role) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, newError(ErrNotFound, fmt.Sprintf("No user with email %s", email))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Role != role {
		return nil, newError(ErrValidation, fmt.Sprintf("%s is not a %s", email, role))
	}

	return user, nil
}
