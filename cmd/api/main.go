package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/helljxnn/astrostar-console/config"
	authadapter "github.com/helljxnn/astrostar-console/internal/adapters/auth"
	emailadapter "github.com/helljxnn/astrostar-console/internal/adapters/email"
	"github.com/helljxnn/astrostar-console/internal/adapters/storage"
	httpdelivery "github.com/helljxnn/astrostar-console/internal/delivery/http"
	"github.com/helljxnn/astrostar-console/internal/delivery/http/controllers"
	"github.com/helljxnn/astrostar-console/internal/delivery/http/middleware"
	"github.com/helljxnn/astrostar-console/internal/projection"
	"github.com/helljxnn/astrostar-console/internal/repository/postgres"
	"github.com/helljxnn/astrostar-console/internal/services"
)

const contextTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	athleteRepo := postgres.NewAthleteRepository(db)
	temporaryRepo := postgres.NewTemporaryMemberRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	// Adapters
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	fileStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		logger.Error("create upload store", "err", err)
		os.Exit(1)
	}

	// In-memory view of registrations per event, refreshed after every write.
	registrations := projection.NewRegistrations()

	// Services
	emailSvc := services.NewEmailService(mailer, cfg.MailNotifyAddress)
	eventSvc := services.NewEventService(eventRepo, registrations, time.Now, contextTimeout)
	calendarSvc := services.NewCalendarService(eventRepo, time.Now, contextTimeout)
	rosterSvc := services.NewRosterService(athleteRepo, temporaryRepo, contextTimeout)
	teamSvc := services.NewTeamService(teamRepo, athleteRepo, temporaryRepo, contextTimeout)
	registrationSvc := services.NewRegistrationService(eventRepo, registrationRepo, teamRepo, registrations, emailSvc, time.Now, contextTimeout)
	pickerSvc := services.NewPickerService(eventRepo, rosterSvc, registrationSvc, contextTimeout)
	authSvc := services.NewAuthService(userRepo, roleRepo, issuer, cfg.JWTExpiry)

	// HTTP
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Event:        controllers.NewEventController(logger, eventSvc, time.Now),
		Calendar:     controllers.NewCalendarController(logger, calendarSvc),
		Roster:       controllers.NewRosterController(logger, rosterSvc),
		Team:         controllers.NewTeamController(logger, teamSvc),
		Registration: controllers.NewRegistrationController(logger, registrationSvc),
		Picker:       controllers.NewPickerController(logger, pickerSvc),
		Auth:         controllers.NewAuthController(logger, authSvc),
		Upload:       controllers.NewUploadController(logger, fileStore),
	}, verifier, logger)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
