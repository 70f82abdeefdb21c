package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/m-ahsan-bilal/portfolio-api/internal/handler"
	"github.com/m-ahsan-bilal/portfolio-api/internal/logging"
	"github.com/m-ahsan-bilal/portfolio-api/internal/notify"
	"github.com/m-ahsan-bilal/portfolio-api/internal/ratelimit"
	"github.com/m-ahsan-bilal/portfolio-api/internal/repository"
	"github.com/m-ahsan-bilal/portfolio-api/internal/service"
)

const (
	submissionLimit  = 3
	submissionWindow = time.Hour
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	origins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	if os.Getenv("ALLOWED_ORIGINS") == "" {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:8080",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8080",
		}
	}
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	trustedProxyCount := 1
	if v := os.Getenv("TRUSTED_PROXY_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			trustedProxyCount = n
		}
	}

	// In-memory ledger by default; Postgres when DATABASE_URL is set.
	var repo repository.SubmissionRepository
	memoryStorage := true
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := repository.NewPool(context.Background(), dbURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		repo = repository.NewPgSubmissionRepository(pool)
		memoryStorage = false
	} else {
		repo = repository.NewMemorySubmissionRepository()
	}

	limiter := ratelimit.NewSlidingWindow(submissionLimit, submissionWindow)

	// Email notifications are enabled only when a sender is configured;
	// otherwise submissions are just logged.
	var notifier notify.Notifier = notify.LogNotifier{}
	if sender := os.Getenv("SENDER_EMAIL"); sender != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:        os.Getenv("SMTP_HOST"),
			Port:        os.Getenv("SMTP_PORT"),
			SenderEmail: sender,
			Password:    os.Getenv("SENDER_PASSWORD"),
			AdminEmail:  os.Getenv("ADMIN_EMAIL"),
		})
	}

	intakeService := service.NewIntakeService(repo, limiter, notifier)

	h := handler.New(origins)
	contactHandler := handler.NewContactHandler(intakeService, trustedProxyCount, memoryStorage)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /contact", contactHandler.Submit)
	mux.HandleFunc("GET /contacts", contactHandler.List)
	mux.HandleFunc("GET /contacts/{id}", contactHandler.Get)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      h.CORS(handler.SecurityHeaders(handler.RequestLogger(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go dailySummaryLoop(intakeService, notifier)

	go func() {
		slog.Info("server listening", "addr", server.Addr, "memory_storage", memoryStorage)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// dailySummaryLoop sends the admin a digest of the ledger once a day.
func dailySummaryLoop(intake service.IntakeService, notifier notify.Notifier) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		submissions, err := intake.List(ctx)
		if err == nil {
			err = notifier.DailySummary(ctx, submissions)
		}
		if err != nil {
			slog.Error("daily summary failed", "error", err)
		}
		cancel()
	}
}
