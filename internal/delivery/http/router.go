package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/controllers"
	"github.com/helljxnn/astrostar-console/internal/delivery/http/middleware"
	"github.com/helljxnn/astrostar-console/internal/domain"
)

// Controllers groups the handler sets the router wires up.
type Controllers struct {
	Event        *controllers.EventController
	Calendar     *controllers.CalendarController
	Roster       *controllers.RosterController
	Team         *controllers.TeamController
	Registration *controllers.RegistrationController
	Picker       *controllers.PickerController
	Auth         *controllers.AuthController
	Upload       *controllers.UploadController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", authed(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", authed(c.Event.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", authed(c.Event.GetEventByID))
	mux.HandleFunc("PUT /events/{eventID}", authed(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", authed(c.Event.DeleteEvent))
	mux.HandleFunc("GET /events/check-name", authed(c.Event.CheckName))

	// Calendar
	mux.HandleFunc("GET /calendar", authed(c.Calendar.Grid))
	mux.HandleFunc("GET /calendar/slot-draft", authed(c.Calendar.SlotDraft))
	mux.HandleFunc("GET /events/{eventID}/actions", authed(c.Calendar.EventActions))

	// Rosters
	mux.HandleFunc("GET /rosters/foundation", authed(c.Roster.ListFoundation))
	mux.HandleFunc("GET /rosters/temporary", authed(c.Roster.ListTemporary))
	mux.HandleFunc("GET /rosters/check-identification", authed(c.Roster.CheckIdentification))

	// Teams
	mux.HandleFunc("POST /teams", authed(c.Team.CreateTeam))
	mux.HandleFunc("GET /teams", authed(c.Team.ListTeams))
	mux.HandleFunc("GET /teams/{teamID}", authed(c.Team.GetTeamByID))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", authed(c.Registration.Submit))
	mux.HandleFunc("PUT /events/{eventID}/registrations", authed(c.Registration.Submit))
	mux.HandleFunc("GET /events/{eventID}/registrations", authed(c.Registration.ListByEvent))
	mux.HandleFunc("PATCH /registrations/{registrationID}/status", authed(c.Registration.AdvanceStatus))

	// Participant picker sessions
	mux.HandleFunc("POST /picker/sessions", authed(c.Picker.Open))
	mux.HandleFunc("PUT /picker/sessions/{sessionID}/filter", authed(c.Picker.Filter))
	mux.HandleFunc("PUT /picker/sessions/{sessionID}/page", authed(c.Picker.SetPage))
	mux.HandleFunc("POST /picker/sessions/{sessionID}/toggle", authed(c.Picker.Toggle))
	mux.HandleFunc("PUT /picker/sessions/{sessionID}/companions", authed(c.Picker.SetCompanions))
	mux.HandleFunc("POST /picker/sessions/{sessionID}/submit", authed(c.Picker.Submit))
	mux.HandleFunc("DELETE /picker/sessions/{sessionID}", authed(c.Picker.Close))

	// Uploads
	mux.HandleFunc("POST /uploads", authed(c.Upload.Upload))

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
