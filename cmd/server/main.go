package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mindtrack/internal/db"
	"mindtrack/internal/handlers"
	mw "mindtrack/internal/middleware"
	"mindtrack/internal/services"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	encSvc, err := services.NewEncryptionService([]byte(encryptionKey))
	if err != nil {
		logger.Fatal("invalid ENCRYPTION_KEY", zap.Error(err))
	}

	port := mustGetenv("PORT", "8080")

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		logger.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(dbConn, []byte(jwtSecret))
	userHandler := handlers.NewUserHandler(dbConn)
	journalHandler := handlers.NewJournalHandler(dbConn, encSvc)
	fitnessHandler := handlers.NewFitnessHandler(dbConn)
	medicationHandler := handlers.NewMedicationHandler(dbConn)
	circleHandler := handlers.NewCircleHandler(dbConn, encSvc)
	insightsHandler := handlers.NewInsightsHandler(dbConn)
	statsHandler := handlers.NewStatsHandler(dbConn)
	exportHandler := handlers.NewExportHandler(dbConn, encSvc)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)

			pr.Get("/users/me", userHandler.GetMe)
			pr.Put("/users/me", userHandler.UpdateMe)
			pr.Delete("/users/me", userHandler.DeleteMe)

			pr.Post("/journal", journalHandler.Create)
			pr.Get("/journal", journalHandler.List)
			pr.Put("/journal/{id}", journalHandler.Update)
			pr.Delete("/journal/{id}", journalHandler.Delete)

			pr.Post("/fitness", fitnessHandler.Upsert)
			pr.Get("/fitness", fitnessHandler.List)
			pr.Get("/fitness/weekly", fitnessHandler.Weekly)

			pr.Post("/medications", medicationHandler.Create)
			pr.Get("/medications", medicationHandler.List)
			pr.Get("/medications/summary", medicationHandler.Summary)
			pr.Post("/medications/{id}/taken", medicationHandler.MarkTaken)

			pr.Post("/circles", circleHandler.Create)
			pr.Get("/circles", circleHandler.List)
			pr.Post("/circles/join", circleHandler.JoinByCode)
			pr.Post("/circles/{id}/join", circleHandler.Join)
			pr.Get("/circles/{id}/members", circleHandler.Members)
			pr.Post("/circles/{id}/message", circleHandler.SendMessage)
			pr.Get("/circles/{id}/messages", circleHandler.ListMessages)

			pr.Get("/insights/weekly", insightsHandler.Weekly)
			pr.Get("/stats", statsHandler.Get)

			pr.Get("/export/journal", exportHandler.Journal)
			pr.Get("/export/fitness", exportHandler.Fitness)
			pr.Get("/export/medications", exportHandler.Medications)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}
