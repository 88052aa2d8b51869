package handler

import (
	"fmt"
	"net/http"

	"github.com/wellpath/portal/internal/ctxkeys"
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/respond"
	"github.com/wellpath/portal/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.authService.Register(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, authResponse{Token: res.Token, User: newUserView(res.User)})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.authService.Login(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, authResponse{Token: res.Token, User: newUserView(res.User)})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	account, err := h.authService.Account(r.Context(), identity)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var me any
	switch a := account.(type) {
	case *model.Patient:
		me = newProfileView(&a.User)
	case *model.Provider:
		me = newProviderMeView(a)
	default:
		respond.Error(w, r, fmt.Errorf("unexpected account type %T", account))
		return
	}

	respond.JSON(w, r, http.StatusOK, me)
}

func (h *authHandler) SecurePing(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	respond.JSON(w, r, http.StatusOK, map[string]any{
		"message": "Authenticated",
		"user": map[string]any{
			"id":   identity.UserID,
			"role": identity.Role,
		},
	})
}
