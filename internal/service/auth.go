package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wellpath/portal/internal/metrics"
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/repository"
	"github.com/wellpath/portal/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Role         string `json:"role" validate:"required"`
	ConsentGiven bool   `json:"consentGiven"`
	Allergies    string `json:"allergies"`
	Medications  string `json:"medications"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string
	User  *model.User
}

type AuthService struct {
	accounts
	mailer    Mailer
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

func NewAuthService(
	userRepository repository.UserRepository,
	goalRepository repository.GoalRepository,
	reminderRepository repository.ReminderRepository,
	assignmentRepository repository.AssignmentRepository,
	mailer Mailer,
	jwtSecret string,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		accounts: accounts{
			userRepository:       userRepository,
			goalRepository:       goalRepository,
			reminderRepository:   reminderRepository,
			assignmentRepository: assignmentRepository,
		},
		mailer:    mailer,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		now:       time.Now,
	}
}

// Register creates the account and signs the caller in. Patients get their
// default goals and the annual check reminder in the same transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Role = strings.TrimSpace(in.Role)

	err := validation.Struct(&in)
	if err != nil {
		return nil, errMissingFields
	}

	role, err := model.ParseRole(in.Role)
	if err != nil {
		return nil, errInvalidRole
	}

	err = validation.ValidateEmail(in.Email)
	if err != nil {
		return nil, newError(ErrValidation, err.Error())
	}

	err = validation.ValidateName(in.Name)
	if err != nil {
		return nil, newError(ErrValidation, err.Error())
	}

	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, newError(ErrValidation, err.Error())
	}

	_, err = s.userRepository.ByEmail(ctx, in.Email)
	if err == nil {
		return nil, errEmailInUse
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := model.User{
		ID:           uuid.New().String(),
		Role:         role,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		ConsentGiven: in.ConsentGiven,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch role {
	case model.RolePatient:
		user.Allergies = strings.TrimSpace(in.Allergies)
		user.Medications = strings.TrimSpace(in.Medications)
		err = s.userRepository.CreatePatient(ctx, newPatient(user, now))
	case model.RoleProvider:
		err = s.userRepository.Create(ctx, &user)
	}
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, errEmailInUse
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.Registrations.WithLabelValues(string(role)).Inc()
	slog.Info("user registered", "user_id", user.ID, "role", role)

	if role == model.RolePatient {
		err = s.mailer.SendWelcome(ctx, user.Email, user.Name)
		if err != nil {
			slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	}

	token, err := s.GenerateJWT(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResult{Token: token, User: &user}, nil
}

func newPatient(user model.User, now time.Time) *model.Patient {
	patient := &model.Patient{
		User:      user,
		Goals:     model.NewDefaultGoals(),
		Reminders: []*model.Reminder{model.NewAnnualWellnessCheck(now)},
	}
	for _, g := range patient.Goals {
		g.ID = uuid.New().String()
		g.CreatedAt = now
	}
	for _, r := range patient.Reminders {
		r.ID = uuid.New().String()
		r.CreatedAt = now
	}
	return patient
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	err := validation.Struct(&in)
	if err != nil {
		return nil, errMissingFields
	}

	user, err := s.userRepository.ByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(in.Password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

// Verify resolves a bearer token to the identity of a user that still
// exists. The role comes from the stored user, not from the token.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, errInvalidToken
	}

	claims, err := s.VerifyJWT(token)
	if err != nil {
		return nil, errInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errInvalidToken
	}
	if _, ok := claims["role"].(string); !ok {
		return nil, errInvalidToken
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errTokenUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &model.Identity{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) RequireRole(identity *model.Identity, role model.Role) error {
	if identity == nil {
		return errInvalidToken
	}
	if identity.Role != role {
		return errForbidden
	}
	return nil
}

// Account loads the caller's full record: goals and reminders for a
// patient, assigned patient ids for a provider.
func (s *AuthService) Account(ctx context.Context, identity *model.Identity) (model.Account, error) {
	user, err := s.user(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, user)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(s.jwtExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
