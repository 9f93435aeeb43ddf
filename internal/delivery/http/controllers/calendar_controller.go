package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/services"
)

type CalendarController struct {
	Logger  *slog.Logger
	Service services.CalendarService
}

func NewCalendarController(logger *slog.Logger, svc services.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
	}
}

// Grid godoc
// @Summary Calendar grid
// @Description Returns the day/week/month grid of events around a focus date, with display status and permitted actions per event.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param date query string false "Focus date (YYYY-MM-DD, default today)"
// @Param mode query string false "View mode: month, week, or day (default month)"
// @Success 200 {object} helpers.APIResponse "data contains grid days"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events/calendar [get]
func (c *CalendarController) Grid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	current := time.Now()
	if s := q.Get("date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		current = t
	}
	mode := domain.ViewMonth
	if s := q.Get("mode"); s != "" {
		mode = domain.ViewMode(s)
		if !mode.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "mode must be month, week, or day")
			return
		}
	}

	days, err := c.Service.Grid(r.Context(), domain.CalendarView{Current: current, Mode: mode})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, days)
}

// EventActionsResponse is the payload for GET /events/{eventID}/actions.
type EventActionsResponse struct {
	Actions       []domain.ActionKind `json:"actions"`
	DisplayStatus domain.EventStatus  `json:"display_status"`
}

// EventActions godoc
// @Summary Permitted actions for an event
// @Description Returns the status-gated action menu entries for one event.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains {actions, display_status}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/actions [get]
func (c *CalendarController) EventActions(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actions, displayStatus, err := c.Service.EventActions(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventActionsResponse{Actions: actions, DisplayStatus: displayStatus})
}

// SlotDraft godoc
// @Summary Create-form prefill for an empty calendar slot
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param start query string true "Slot start (RFC 3339)"
// @Param end query string true "Slot end (RFC 3339)"
// @Success 200 {object} helpers.APIResponse "data contains the prefilled draft"
// @Router /events/calendar/slot-draft [get]
func (c *CalendarController) SlotDraft(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start must be RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end must be RFC 3339")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.SlotDraft(start, end))
}
