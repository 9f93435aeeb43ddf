package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/services"
)

type RosterController struct {
	Logger  *slog.Logger
	Service services.RosterService
}

func NewRosterController(logger *slog.Logger, svc services.RosterService) *RosterController {
	return &RosterController{
		Logger:  logger,
		Service: svc,
	}
}

func rosterFilter(r *http.Request) domain.RosterFilter {
	q := r.URL.Query()
	return domain.RosterFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
}

// ListFoundationResponse is the paginated foundation roster payload.
type ListFoundationResponse struct {
	Members    []*domain.FoundationMember `json:"members"`
	Pagination helpers.PaginationMeta     `json:"pagination"`
}

// ListFoundation godoc
// @Summary List the permanent (foundation) roster
// @Tags rosters
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on name or identification"
// @Param category query string false "Category filter"
// @Success 200 {object} helpers.APIResponse "data contains members and pagination"
// @Router /athletes [get]
func (c *RosterController) ListFoundation(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	members, total, err := c.Service.ListFoundation(r.Context(), rosterFilter(r), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListFoundationResponse{
		Members:    members,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListTemporaryResponse is the paginated temporary roster payload.
type ListTemporaryResponse struct {
	Members    []*domain.TemporaryMember `json:"members"`
	Pagination helpers.PaginationMeta    `json:"pagination"`
}

// ListTemporary godoc
// @Summary List the temporary-persons roster
// @Description Category filters do not apply to the temporary roster.
// @Tags rosters
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on name or identification"
// @Success 200 {object} helpers.APIResponse "data contains members and pagination"
// @Router /temporary-members [get]
func (c *RosterController) ListTemporary(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	members, total, err := c.Service.ListTemporary(r.Context(), rosterFilter(r), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListTemporaryResponse{
		Members:    members,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// CheckIdentification godoc
// @Summary Check identification availability within a roster
// @Tags rosters
// @Produce json
// @Security BearerAuth
// @Param source query string true "Roster: foundation or temporal"
// @Param value query string true "Identification to check"
// @Param exclude_id query string false "Member ID to exclude (edit forms)"
// @Success 200 {object} helpers.APIResponse "data contains {available, message}"
// @Router /rosters/check-identification [get]
func (c *RosterController) CheckIdentification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source := domain.SourceType(q.Get("source"))
	available, err := c.Service.CheckIdentificationAvailable(r.Context(), source, q.Get("value"), q.Get("exclude_id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "source and value are required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	resp := CheckAvailabilityResponse{Available: available}
	if !available {
		resp.Message = "that identification is already registered"
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
