package handlers

import (
	"context"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

type UserService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, caller models.Caller) (*models.CurrentUserResponse, error)
}

type UserHandler struct {
	svc       UserService
	validator *validator.Validate
	logger    log.Logger
}

func NewUserHandler(svc UserService, v *validator.Validate, logger log.Logger) *UserHandler {
	return &UserHandler{svc: svc, validator: v, logger: logger}
}

// Signup godoc
// @Tags Users
// @Summary Create an account
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Signup payload"
// @Success 201 {object} handlers.Envelope{data=models.SignupResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 409 {object} handlers.Envelope
// @Router /api/users/signup [post]
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeUserValidationError, &req) {
		return
	}
	resp, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

// Login godoc
// @Tags Users
// @Summary Exchange credentials for an access token
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} handlers.Envelope{data=models.LoginResponse}
// @Failure 401 {object} handlers.Envelope
// @Router /api/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeUserValidationError, &req) {
		return
	}
	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// Me godoc
// @Tags Users
// @Summary Current user
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.Envelope{data=models.CurrentUserResponse}
// @Failure 401 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope
// @Router /api/users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Me(r.Context(), caller)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
