package routes

import (
	"net/http"

	"github.com/wellpath/portal/internal/app"
	"github.com/wellpath/portal/internal/handler"
	"github.com/wellpath/portal/internal/metrics"
	"github.com/wellpath/portal/internal/middleware"
	"github.com/wellpath/portal/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	patient := handler.NewPatientHandler(app.PatientService)
	provider := handler.NewProviderHandler(app.ProviderService)

	// Guards
	authenticated := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.RequireAuth(app.AuthService))
	}
	as := func(role model.Role) func(http.HandlerFunc) http.Handler {
		return func(h http.HandlerFunc) http.Handler {
			return middleware.Chain(h,
				middleware.RequireAuth(app.AuthService),
				middleware.RequireRole(app.AuthService, role),
			)
		}
	}
	patientOnly := as(model.RolePatient)
	providerOnly := as(model.RoleProvider)

	p := app.Cfg.APIPrefix
	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth
	mux.HandleFunc("POST "+p+"/auth/register", auth.Register)
	mux.HandleFunc("POST "+p+"/auth/login", auth.Login)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.Handle("GET "+p+"/auth/me", authenticated(auth.Me))
	mux.Handle("GET "+p+"/secure-ping", authenticated(auth.SecurePing))

	// Patient
	mux.Handle("GET "+p+"/patient/profile", patientOnly(patient.Profile))
	mux.Handle("PUT "+p+"/patient/profile", patientOnly(patient.UpdateProfile))
	mux.Handle("GET "+p+"/patient/dashboard", patientOnly(patient.Dashboard))
	mux.Handle("POST "+p+"/patient/goals/{goalId}/log", patientOnly(patient.LogGoal))
	mux.Handle("POST "+p+"/patient/reminders/{reminderId}/complete", patientOnly(patient.CompleteReminder))

	// Provider
	mux.Handle("GET "+p+"/provider/patients", providerOnly(provider.Patients))
	mux.Handle("GET "+p+"/provider/patients/{patientId}", providerOnly(provider.Patient))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	// None of these may replace the request: Metrics and RequestLogging read
	// the route pattern the mux stores on it.
	handler := middleware.Chain(
		mux,
		middleware.Metrics,
		middleware.RequestLogging,
		middleware.SecurityHeaders,
		middleware.CORS(app.Cfg.ClientOrigin),
	)

	return handler
}
