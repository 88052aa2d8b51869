package handler

import (
	"net/http"

	"github.com/wellpath/portal/internal/respond"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Wellness & Preventive Care API",
	})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, r, http.StatusNotFound, "Not found")
}
