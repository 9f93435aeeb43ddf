package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/services"
)

// OpenPickerRequest is the request body for POST /picker/sessions.
type OpenPickerRequest struct {
	EventID string `json:"event_id"`
	Mode    string `json:"mode"`
}

// Validate implements Validator.
func (o OpenPickerRequest) Validate() []string {
	var errs []string
	if o.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	switch domain.SubmissionMode(o.Mode) {
	case domain.ModeRegister, domain.ModeEdit:
	case domain.ModeView:
		errs = append(errs, "view mode is read-only")
	default:
		errs = append(errs, "mode must be register or edit")
	}
	return errs
}

// PickerFilterRequest is the request body for PUT /picker/sessions/{sessionID}/filter.
type PickerFilterRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// Validate implements Validator.
func (p PickerFilterRequest) Validate() []string { return nil }

// PickerPageRequest is the request body for PUT /picker/sessions/{sessionID}/page.
type PickerPageRequest struct {
	Page int `json:"page"`
}

// Validate implements Validator.
func (p PickerPageRequest) Validate() []string {
	if p.Page < 1 {
		return []string{"page must be at least 1"}
	}
	return nil
}

// PickerToggleRequest is the request body for POST /picker/sessions/{sessionID}/toggle.
type PickerToggleRequest struct {
	ParticipantID string `json:"participant_id"`
}

// Validate implements Validator.
func (p PickerToggleRequest) Validate() []string {
	if p.ParticipantID == "" {
		return []string{"participant_id is required"}
	}
	return nil
}

// PickerCompanionsRequest is the request body for PUT /picker/sessions/{sessionID}/companions.
type PickerCompanionsRequest struct {
	ParticipantID string `json:"participant_id"`
	Companions    int    `json:"companions"`
}

// Validate implements Validator.
func (p PickerCompanionsRequest) Validate() []string {
	if p.ParticipantID == "" {
		return []string{"participant_id is required"}
	}
	return nil
}

// PickerSubmitRequest is the request body for POST /picker/sessions/{sessionID}/submit.
type PickerSubmitRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Validate implements Validator.
func (p PickerSubmitRequest) Validate() []string { return nil }

// PickerItemResponse is one selectable roster entry.
type PickerItemResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Identification string `json:"identification"`
	Source         string `json:"source"`
	Category       string `json:"category,omitempty"`
	Selected       bool   `json:"selected"`
}

// PickerPageResponse is the picker session state returned by every picker call.
type PickerPageResponse struct {
	SessionID string                     `json:"session_id"`
	Items     []PickerItemResponse       `json:"items"`
	Total     int                        `json:"total"`
	Page      int                        `json:"page"`
	Selection []domain.RegistrationEntry `json:"selection"`
}

func toPickerPageResponse(page *services.PickerPage) PickerPageResponse {
	selected := make(map[string]bool, len(page.Selection))
	for _, entry := range page.Selection {
		selected[entry.ParticipantID] = true
	}
	items := make([]PickerItemResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, PickerItemResponse{
			ID:             p.ParticipantID(),
			Name:           p.DisplayName(),
			Identification: p.Identification(),
			Source:         string(p.Source()),
			Category:       p.CategoryName(),
			Selected:       selected[p.ParticipantID()],
		})
	}
	return PickerPageResponse{
		SessionID: page.SessionID,
		Items:     items,
		Total:     page.Total,
		Page:      page.Page,
		Selection: page.Selection,
	}
}

type PickerController struct {
	Logger  *slog.Logger
	Service services.PickerService
}

func NewPickerController(logger *slog.Logger, svc services.PickerService) *PickerController {
	return &PickerController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *PickerController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var mixed *domain.MixedSourceError
	switch {
	case errors.As(err, &mixed):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, mixed.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrEmptySelection):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, domain.ErrEmptySelection.Error())
	case errors.Is(err, domain.ErrConfirmationRequired):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrConfirmationRequired.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid picker request")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

func (c *PickerController) writePage(w http.ResponseWriter, status int, page *services.PickerPage) {
	helpers.WriteJSONSuccess(w, status, toPickerPageResponse(page))
}

// Open godoc
// @Summary Open a participant picker session
// @Description Starts a picker session for an individual-registration event, loading both rosters. Team events register through the direct submission endpoint instead.
// @Tags picker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OpenPickerRequest true "Event and submission mode"
// @Success 201 {object} helpers.APIResponse "data contains the session state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (team event, bad mode)"
// @Router /picker/sessions [post]
func (c *PickerController) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenPickerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	page, err := c.Service.Open(r.Context(), req.EventID, domain.SubmissionMode(req.Mode))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.writePage(w, http.StatusCreated, page)
}

func (c *PickerController) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("sessionID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return "", false
	}
	return id, true
}

// Filter godoc
// @Summary Filter the picker roster
// @Description Replaces the search term and category filter and resets to page 1. The category filter applies to foundation entries only.
// @Tags picker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Picker session ID"
// @Param body body PickerFilterRequest true "Filter"
// @Success 200 {object} helpers.APIResponse "data contains the session state"
// @Router /picker/sessions/{sessionID}/filter [put]
func (c *PickerController) Filter(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	var req PickerFilterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	page, err := c.Service.Filter(id, req.Search, req.Category)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.writePage(w, http.StatusOK, page)
}

// SetPage godoc
// @Summary Move to a page of the filtered roster
// @Tags picker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Picker session ID"
// @Param body body PickerPageRequest true "Page number"
// @Success 200 {object} helpers.APIResponse "data contains the session state"
// @Router /picker/sessions/{sessionID}/page [put]
func (c *PickerController) SetPage(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	var req PickerPageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	page, err := c.Service.SetPage(id, req.Page)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.writePage(w, http.StatusOK, page)
}

// Toggle godoc
// @Summary Select or deselect a participant
// @Description Toggles the participant in the session's selection. Once anything is selected, picks from the other roster have no effect.
// @Tags picker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Picker session ID"
// @Param body body PickerToggleRequest true "Participant"
// @Success 200 {object} helpers.APIResponse "data contains the session state"
// @Router /picker/sessions/{sessionID}/toggle [post]
func (c *PickerController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	var req PickerToggleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	page, err := c.Service.Toggle(id, req.ParticipantID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.writePage(w, http.StatusOK, page)
}

// SetCompanions godoc
// @Summary Set the companion count for a selected participant
// @Tags picker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Picker session ID"
// @Param body body PickerCompanionsRequest true "Companion count"
// @Success 200 {object} helpers.APIResponse "data contains the session state"
// @Router /picker/sessions/{sessionID}/companions [put]
func (c *PickerController) SetCompanions(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	var req PickerCompanionsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	page, err := c.Service.SetCompanions(id, req.ParticipantID, req.Companions)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.writePage(w, http.StatusOK, page)
}

// Submit godoc
// @Summary Submit the picker selection
// @Description Hands the session's selection to the registration flow. The session closes on success and survives on failure so the selection can be retried.
// @Tags picker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Picker session ID"
// @Param body body PickerSubmitRequest true "Confirmation flag"
// @Success 201 {object} helpers.APIResponse "data contains the created registrations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty selection)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (confirmation required)"
// @Router /picker/sessions/{sessionID}/submit [post]
func (c *PickerController) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	var req PickerSubmitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	regs, err := c.Service.Submit(r.Context(), id, req.Confirmed)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, regs)
}

// Close godoc
// @Summary Discard a picker session
// @Tags picker
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Picker session ID"
// @Success 200 {object} helpers.APIResponse "data contains {closed: true}"
// @Router /picker/sessions/{sessionID} [delete]
func (c *PickerController) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	c.Service.Close(id)
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"closed": true})
}
