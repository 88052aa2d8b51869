package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wellpath/portal/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreatePatient(ctx context.Context, patient *model.Patient) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const insertUserQuery = `INSERT INTO users (id, role, name, email, password_hash, consent_given, allergies, medications, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func insertUser(ctx context.Context, db sqlx.ExecerContext, user *model.User) error {
	_, err := db.ExecContext(ctx, insertUserQuery,
		user.ID,
		string(user.Role),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.ConsentGiven,
		user.Allergies,
		user.Medications,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return insertUser(ctx, r.db, user)
}

// CreatePatient writes the user row with its goals and reminders in one
// transaction so a patient never exists without its defaults.
func (r *userRepository) CreatePatient(ctx context.Context, patient *model.Patient) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = insertUser(ctx, tx, &patient.User)
	if err != nil {
		return err
	}

	for i, goal := range patient.Goals {
		goal.UserID = patient.ID
		goal.Position = i
		err = insertGoal(ctx, tx, goal)
		if err != nil {
			return fmt.Errorf("failed to create goal %s: %w", goal.Type, err)
		}
	}

	for i, reminder := range patient.Reminders {
		reminder.UserID = patient.ID
		reminder.Position = i
		err = insertReminder(ctx, tx, reminder)
		if err != nil {
			return fmt.Errorf("failed to create reminder %q: %w", reminder.Title, err)
		}
	}

	return tx.Commit()
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET name = $1, allergies = $2, medications = $3, updated_at = $4 WHERE id = $5`

	user.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query, user.Name, user.Allergies, user.Medications, user.UpdatedAt, user.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation works for both SQLite and PostgreSQL error texts.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
