package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wellpath/portal/internal/config"
	"github.com/wellpath/portal/internal/db"
	"github.com/wellpath/portal/internal/repository"
	"github.com/wellpath/portal/internal/service"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	PatientService   *service.PatientService
	ProviderService  *service.ProviderService
	EmailService     *service.EmailService
	ReminderNotifier *service.ReminderNotifier
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewWithDB(cfg, database), nil
}

// NewWithDB wires services over an already migrated database.
func NewWithDB(cfg *config.Config, database *sqlx.DB) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	reminderRepository := repository.NewReminderRepository(database)
	assignmentRepository := repository.NewAssignmentRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.EmailLogOnly(),
	)
	authService := service.NewAuthService(
		userRepository,
		goalRepository,
		reminderRepository,
		assignmentRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
	)
	patientService := service.NewPatientService(userRepository, goalRepository, reminderRepository)
	providerService := service.NewProviderService(userRepository, goalRepository, reminderRepository, assignmentRepository)
	reminderNotifier := service.NewReminderNotifier(reminderRepository, emailService)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		PatientService:   patientService,
		ProviderService:  providerService,
		EmailService:     emailService,
		ReminderNotifier: reminderNotifier,
	}
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
