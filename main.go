package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"messageboard/config"
	"messageboard/config/database"
	messageHandler "messageboard/internal/message"
	"messageboard/internal/message/repository"
	"messageboard/internal/message/service"
	userRepository "messageboard/internal/user/repository"
	"messageboard/pkg/logger"
	"messageboard/pkg/telemetry"
	"messageboard/router"
	"messageboard/socket"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	if envErr != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Mode())
	if err != nil {
		return fmt.Errorf("tracing setup failed: %w", err)
	}

	repo, closeStore := openMessageStore(ctx, cfg)

	hub := socket.NewHub()
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	msgService := service.NewMessageService(repo, hub)
	handler := router.Setup(router.Options{
		Messages:       messageHandler.NewMessageHandler(msgService),
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins(),
		LogRequests:    !cfg.IsTest(),
	})

	server := &http.Server{Addr: cfg.Addr(), Handler: handler}
	serveErr := make(chan error, 1)
	go func() {
		logger.Sugar.Infof("Message board listening on %s (%s mode)", cfg.Addr(), cfg.Mode())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Sugar.Info("Shutting down")
	case err = <-serveErr:
		err = fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if serr := server.Shutdown(shutdownCtx); serr != nil {
		logger.Sugar.Errorf("HTTP shutdown: %v", serr)
	}
	stopHub()
	<-hub.Done()
	closeStore(shutdownCtx)
	if terr := shutdownTracing(shutdownCtx); terr != nil {
		logger.Sugar.Errorf("Tracing shutdown: %v", terr)
	}
	return err
}

// openMessageStore connects to the store named by the connection string and
// returns its message adapter. Connectivity problems are logged, never fatal.
func openMessageStore(ctx context.Context, cfg config.Config) (repository.MessageRepository, func(context.Context)) {
	switch database.DriverFor(cfg.DBConnectionString) {
	case database.DriverPostgres:
		db, ok := database.ConnectPostgres(ctx, cfg.DBConnectionString)
		repo := repository.NewPostgresMessageRepository(db)
		if ok {
			if err := repo.EnsureSchema(ctx); err != nil {
				logger.Sugar.Errorf("Messages table unavailable: %v", err)
			}
		}
		return repo, func(context.Context) { closeSQL(db) }

	default:
		client, db := database.ConnectMongo(ctx, cfg.DBConnectionString, cfg.DBName)
		var messages, users *mongo.Collection
		if db != nil {
			messages = db.Collection(repository.MessagesCollection)
			users = db.Collection(userRepository.UsersCollection)
		}
		// Users have no routes yet; the adapter is constructed so the
		// collection is ready when they do.
		_ = userRepository.NewUserRepository(users)

		return repository.NewMongoMessageRepository(messages), func(ctx context.Context) {
			if client == nil {
				return
			}
			if err := client.Disconnect(ctx); err != nil {
				logger.Sugar.Errorf("MongoDB disconnect: %v", err)
			}
		}
	}
}

func closeSQL(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Sugar.Errorf("PostgreSQL close: %v", err)
	}
}
