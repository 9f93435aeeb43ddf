package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
)

// CreateTeamRequest is the request body for POST /teams. Trainer and members
// are chosen in independent sub-flows; the composition check runs at submit.
type CreateTeamRequest struct {
	Name          string   `json:"name"`
	CategoryID    string   `json:"category_id"`
	TrainerID     string   `json:"trainer_id"`
	TrainerSource string   `json:"trainer_source"`
	MemberIDs     []string `json:"member_ids"`
	MemberSource  string   `json:"member_source"`
}

// Validate implements Validator.
func (c CreateTeamRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.CategoryID == "" {
		errs = append(errs, "category_id is required")
	}
	if c.TrainerID == "" {
		errs = append(errs, "trainer_id is required")
	}
	if len(c.MemberIDs) == 0 {
		errs = append(errs, "at least one member is required")
	}
	for _, s := range []string{c.TrainerSource, c.MemberSource} {
		switch domain.SourceType(s) {
		case domain.SourceFoundation, domain.SourceTemporal:
		default:
			errs = append(errs, "source must be foundation or temporal")
		}
	}
	return errs
}

type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateTeam godoc
// @Summary Create a team
// @Description Assembles a team from a trainer and members. A mixed foundation/temporal composition is rejected with a message naming both types, before anything is persisted.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} helpers.APIResponse "data contains the created team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (includes mixed-source compositions)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate name)"
// @Router /teams [post]
func (c *TeamController) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.CreateTeam(r.Context(), req.Name, req.CategoryID, req.TrainerID,
		domain.SourceType(req.TrainerSource), req.MemberIDs, domain.SourceType(req.MemberSource))
	if err != nil {
		var mixed *domain.MixedSourceError
		switch {
		case errors.As(err, &mixed):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, mixed.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "trainer or member not found")
		case errors.Is(err, domain.ErrConflict):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "a team with that name already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid team data")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, team)
}

// ListTeamsResponse is the paginated list payload for GET /teams.
type ListTeamsResponse struct {
	Teams      []*domain.Team         `json:"teams"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on name"
// @Param category query string false "Category filter"
// @Success 200 {object} helpers.APIResponse "data contains teams and pagination"
// @Router /teams [get]
func (c *TeamController) ListTeams(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	teams, total, err := c.Service.ListTeams(r.Context(), rosterFilter(r), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListTeamsResponse{
		Teams:      teams,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetTeamByID handles GET /teams/{teamID}.
func (c *TeamController) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamID")
	if teamID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing teamID")
		return
	}
	team, err := c.Service.GetTeamByID(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "team not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}
