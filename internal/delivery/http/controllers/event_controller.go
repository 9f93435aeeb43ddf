package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
)

const dateLayout = "2006-01-02"

// EventPayload is the request body for POST /events and PUT /events/{eventID}.
type EventPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Phone       string   `json:"phone"`
	Sponsors    []string `json:"sponsors"`
	ImageURL    string   `json:"image_url"`
	ScheduleURL string   `json:"schedule_url"`
	Publish     bool     `json:"publish"`
	Type        string   `json:"type"`
	CategoryID  string   `json:"category_id"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Status      string   `json:"status"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (p EventPayload) Validate() []string {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "name is required")
	}
	if p.CategoryID == "" {
		errs = append(errs, "category_id is required")
	}
	if _, err := time.Parse(dateLayout, p.StartDate); err != nil {
		errs = append(errs, "start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, p.EndDate); err != nil {
		errs = append(errs, "end_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", p.StartTime); err != nil {
		errs = append(errs, "start_time must be HH:MM")
	}
	if _, err := time.Parse("15:04", p.EndTime); err != nil {
		errs = append(errs, "end_time must be HH:MM")
	}
	if p.Status == string(domain.StatusFinished) {
		errs = append(errs, "status Finished is system-computed and cannot be set")
	}
	return errs
}

func (p EventPayload) toDomain(id string) *domain.Event {
	start, _ := time.Parse(dateLayout, p.StartDate)
	end, _ := time.Parse(dateLayout, p.EndDate)
	status := domain.EventStatus(p.Status)
	if status == "" {
		status = domain.StatusScheduled
	}
	return &domain.Event{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		Phone:       p.Phone,
		Sponsors:    p.Sponsors,
		ImageURL:    p.ImageURL,
		ScheduleURL: p.ScheduleURL,
		Publish:     p.Publish,
		Type:        domain.EventType(p.Type),
		CategoryID:  p.CategoryID,
		StartDate:   start,
		EndDate:     end,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Status:      status,
	}
}

// EventResponse decorates an event with its display status and registration target.
type EventResponse struct {
	*domain.Event
	DisplayStatus      domain.EventStatus        `json:"display_status"`
	RegistrationTarget domain.RegistrationTarget `json:"registration_target"`
	CanEdit            bool                      `json:"can_edit"`
	CanDelete          bool                      `json:"can_delete"`
}

func newEventResponse(e *domain.Event, now time.Time) *EventResponse {
	return &EventResponse{
		Event:              e,
		DisplayStatus:      e.DisplayStatus(now),
		RegistrationTarget: e.Type.RegistrationTarget(),
		CanEdit:            e.CanEdit(now),
		CanDelete:          e.CanDelete(now),
	}
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Now     func() time.Time
}

func NewEventController(logger *slog.Logger, svc domain.EventService, now func() time.Time) *EventController {
	if now == nil {
		now = time.Now
	}
	return &EventController{
		Logger:  logger,
		Service: svc,
		Now:     now,
	}
}

// writeServiceError maps service errors to HTTP responses shared by the event handlers.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrEventLocked):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "event can no longer be edited")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "an event with that name already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event data")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a foundation event. Status defaults to Scheduled; Finished is rejected.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventPayload true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate name)"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventPayload
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toDomain("")
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(event, c.Now()))
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event with display status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventResponse(event, c.Now()))
}

// ListEventsResponse is the paginated list payload for GET /events.
type ListEventsResponse struct {
	Events     []*EventResponse       `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEvents godoc
// @Summary List events
// @Description Lists events with optional status, type, publish, search, and date range filters.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	q := r.URL.Query()

	var filter domain.EventFilter
	filter.Search = q.Get("search")
	if s := q.Get("status"); s != "" {
		status := domain.EventStatus(s)
		filter.Status = &status
	}
	if s := q.Get("type"); s != "" {
		typ := domain.EventType(s)
		filter.Type = &typ
	}
	if s := q.Get("publish"); s != "" {
		publish := s == "true"
		filter.Publish = &publish
	}
	if s := q.Get("from"); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			filter.From = &t
		}
	}
	if s := q.Get("to"); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			filter.To = &t
		}
	}

	events, total, err := c.Service.ListEvents(r.Context(), filter, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	now := c.Now()
	out := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(e, now))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     out,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Updates an event. Rejected when the event is finished, or cancelled with an elapsed date.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body EventPayload true "Event data"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (locked or duplicate name)"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req EventPayload
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.UpdateEvent(r.Context(), req.toDomain(eventID))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventResponse(updated, c.Now()))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event. Permitted regardless of status.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains {deleted: true}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// CheckAvailabilityResponse is the payload for uniqueness-check endpoints.
type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// CheckName godoc
// @Summary Check event name availability
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param value query string true "Name to check"
// @Param exclude_id query string false "Event ID to exclude (edit forms)"
// @Success 200 {object} helpers.APIResponse "data contains {available, message}"
// @Router /events/check-name [get]
func (c *EventController) CheckName(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	excludeID := r.URL.Query().Get("exclude_id")
	available, err := c.Service.CheckNameAvailable(r.Context(), value, excludeID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "value is required")
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	resp := CheckAvailabilityResponse{Available: available}
	if !available {
		resp.Message = "an event with that name already exists"
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
