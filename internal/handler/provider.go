package handler

import (
	"net/http"

	"github.com/wellpath/portal/internal/ctxkeys"
	"github.com/wellpath/portal/internal/respond"
	"github.com/wellpath/portal/internal/service"
)

type ProviderHandler struct {
	providerService *service.ProviderService
}

func NewProviderHandler(providerService *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

func (h *ProviderHandler) Patients(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	summaries, err := h.providerService.PatientSummaries(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	patients := make([]patientSummaryView, 0, len(summaries))
	for _, s := range summaries {
		patients = append(patients, patientSummaryView{ID: s.ID, Name: s.Name, Email: s.Email, Status: s.Status})
	}

	respond.JSON(w, r, http.StatusOK, map[string]any{"patients": patients})
}

func (h *ProviderHandler) Patient(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	patientID := r.PathValue("patientId")

	patient, err := h.providerService.PatientDetail(r.Context(), identity.UserID, patientID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, newPatientDetailView(patient))
}
