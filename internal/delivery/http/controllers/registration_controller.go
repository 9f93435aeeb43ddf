package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
)

// SubmitRegistrationsRequest is the request body for POST and PUT
// /events/{eventID}/registrations.
type SubmitRegistrationsRequest struct {
	Mode      string                     `json:"mode"`
	Confirmed bool                       `json:"confirmed"`
	Entries   []domain.RegistrationEntry `json:"entries"`
}

// Validate implements Validator.
func (s SubmitRegistrationsRequest) Validate() []string {
	var errs []string
	switch domain.SubmissionMode(s.Mode) {
	case domain.ModeRegister, domain.ModeEdit:
	case domain.ModeView:
		errs = append(errs, "view mode is read-only")
	default:
		errs = append(errs, "mode must be register or edit")
	}
	for _, e := range s.Entries {
		switch e.Source {
		case domain.SourceFoundation, domain.SourceTemporal:
		default:
			errs = append(errs, "entry source must be foundation or temporal")
		}
	}
	return errs
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *RegistrationController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var mixed *domain.MixedSourceError
	var transition *domain.InvalidTransitionError
	switch {
	case errors.As(err, &mixed):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, mixed.Error())
	case errors.As(err, &transition):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, transition.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrEmptySelection):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, domain.ErrEmptySelection.Error())
	case errors.Is(err, domain.ErrConfirmationRequired):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrConfirmationRequired.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid registration data")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// Submit godoc
// @Summary Submit registrations for an event
// @Description Register mode creates registrations for the selection; edit mode replaces the stored set and requires confirmed=true. A failed submission leaves existing registrations untouched.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SubmitRegistrationsRequest true "Selection payload"
// @Success 201 {object} helpers.APIResponse "data contains the created registrations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty selection, mixed sources)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (confirmation required)"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SubmitRegistrationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	regs, err := c.Service.Submit(r.Context(), eventID, req.Entries, domain.SubmissionMode(req.Mode), req.Confirmed)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, regs)
}

// ListByEvent godoc
// @Summary List registrations for an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	regs, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// AdvanceStatusRequest is the request body for PATCH /registrations/{registrationID}/status.
type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (a AdvanceStatusRequest) Validate() []string {
	switch domain.RegistrationStatus(a.Status) {
	case domain.RegStatusRegistered, domain.RegStatusConfirmed, domain.RegStatusCancelled, domain.RegStatusAttended:
		return nil
	}
	return []string{"status must be Registered, Confirmed, Cancelled, or Attended"}
}

// AdvanceStatus godoc
// @Summary Advance a registration's status
// @Description Registered advances to Confirmed and then Attended; Cancelled is reachable from any non-Cancelled state and is terminal.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Param body body AdvanceStatusRequest true "Target status"
// @Success 200 {object} helpers.APIResponse "data contains the updated registration"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (invalid transition)"
// @Router /registrations/{registrationID}/status [patch]
func (c *RegistrationController) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	var req AdvanceStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.AdvanceStatus(r.Context(), registrationID, domain.RegistrationStatus(req.Status))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
