package handler

import (
	"errors"
	"net/http"

	"github.com/wellpath/portal/internal/ctxkeys"
	"github.com/wellpath/portal/internal/respond"
	"github.com/wellpath/portal/internal/service"
	"github.com/wellpath/portal/internal/validation"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

type logGoalRequest struct {
	Value *float64 `json:"value" validate:"required"`
}

func (h *PatientHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	dash, err := h.patientService.Dashboard(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]any{
		"goals":     newGoalViews(dash.Goals),
		"reminders": reminderViews(dash.Reminders),
	})
}

func (h *PatientHandler) LogGoal(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	goalID := r.PathValue("goalId")

	var body logGoalRequest
	err := decodeJSON(w, r, &body)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	err = validation.Struct(&body)
	if errors.Is(err, validation.ErrMissingFields) {
		respond.Message(w, r, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, err.Error())
		return
	}

	goals, err := h.patientService.LogGoalValue(r.Context(), identity.UserID, goalID, *body.Value)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]any{"goals": newGoalViews(goals)})
}

func (h *PatientHandler) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	reminderID := r.PathValue("reminderId")

	reminders, err := h.patientService.CompleteReminder(r.Context(), identity.UserID, reminderID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]any{"reminders": reminderViews(reminders)})
}

func (h *PatientHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	user, err := h.patientService.Profile(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, newProfileView(user))
}

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var update service.ProfileUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.patientService.UpdateProfile(r.Context(), identity.UserID, update)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, newProfileView(user))
}
