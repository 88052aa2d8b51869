package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/repository"
)

// accounts assembles full Patient and Provider records from the stores.
type accounts struct {
	userRepository       repository.UserRepository
	goalRepository       repository.GoalRepository
	reminderRepository   repository.ReminderRepository
	assignmentRepository repository.AssignmentRepository
}

func (a *accounts) user(ctx context.Context, id string) (*model.User, error) {
	user, err := a.userRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (a *accounts) patient(ctx context.Context, id string) (*model.Patient, error) {
	user, err := a.user(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RolePatient {
		return nil, errUserNotFound
	}
	return a.withRecords(ctx, user)
}

func (a *accounts) withRecords(ctx context.Context, user *model.User) (*model.Patient, error) {
	goals, err := a.goalRepository.Goals(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}

	reminders, err := a.reminderRepository.Reminders(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}

	return &model.Patient{User: *user, Goals: goals, Reminders: reminders}, nil
}

func (a *accounts) load(ctx context.Context, user *model.User) (model.Account, error) {
	switch user.Role {
	case model.RolePatient:
		return a.withRecords(ctx, user)
	case model.RoleProvider:
		ids, err := a.assignmentRepository.PatientIDs(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get assigned patients: %w", err)
		}
		return &model.Provider{User: *user, AssignedPatientIDs: ids}, nil
	default:
		return nil, fmt.Errorf("user %s: %w", user.ID, model.ErrUnknownRole)
	}
}
