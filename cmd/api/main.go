package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"joiny/config"
	_ "joiny/docs"
	"joiny/internal/adapters/auth"
	"joiny/internal/adapters/email"
	httpdelivery "joiny/internal/delivery/http"
	"joiny/internal/delivery/http/controllers"
	"joiny/internal/delivery/http/middleware"
	"joiny/internal/realtime"
	"joiny/internal/repository/postgres"
	"joiny/internal/services"
)

const shutdownTimeout = 15 * time.Second

// @title Joiny API
// @version 1.0
// @description Party planning: events, invite codes, members, todos, friends and realtime rooms.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBMigrate {
		if err := postgres.Migrate(cfg.DBUrl, logger); err != nil {
			return err
		}
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	todoRepo := postgres.NewTodoRepository(db)
	themeRepo := postgres.NewThemeRepository(db)
	friendshipRepo := postgres.NewFriendshipRepository(db)
	chatRepo := postgres.NewChatMessageRepository(db)

	// Adapters
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	tokens := auth.NewJWT(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)

	// Services
	timeout := cfg.RequestTimeout
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, hasher, tokens, tokens, emailService, logger, timeout)
	eventService := services.NewEventService(eventRepo, participantRepo, userRepo, timeout)
	participantService := services.NewParticipantService(participantRepo, eventRepo, timeout)
	todoService := services.NewTodoService(todoRepo, eventRepo, timeout)
	themeService := services.NewThemeService(themeRepo, timeout)
	friendshipService := services.NewFriendshipService(friendshipRepo, userRepo, emailService, logger, timeout)
	chatService := services.NewChatService(chatRepo, participantRepo, timeout)

	hub := realtime.NewHub(chatService, realtime.HubConfig{
		OffloadWorkers: cfg.OffloadWorkers,
		CheckOrigin:    middleware.OriginChecker(cfg.AllowedOrigins),
	}, logger)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		Events:       controllers.NewEventController(logger, eventService, cfg.PublicBaseURL),
		Participants: controllers.NewParticipantController(logger, eventService, participantService),
		Todos:        controllers.NewTodoController(logger, todoService),
		Themes:       controllers.NewThemeController(logger, themeService),
		Friendships:  controllers.NewFriendshipController(logger, friendshipService),
	}, tokens, hub, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		// Websocket connections are hijacked, so Shutdown does not wait for them.
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
