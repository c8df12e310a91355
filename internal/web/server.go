// Package web provides the HTTP surface of the reminder bot: the web form,
// the JSON creation and listing endpoints, and the Telegram webhook mount.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"remindbot/internal/config"
	"remindbot/internal/database"
	"remindbot/internal/reminder"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server wraps the gin engine and its http.Server. All creation requests
// funnel through the shared validator and Store, the same path the chat
// commands use.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	store  database.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewServer creates the HTTP server. webhook, when non-nil, is mounted at
// POST /api/webhook; its payload schema is owned by Telegram, not by this
// server. now is the clock used for due-time validation (tests pass a
// fixed one; nil means time.Now).
func NewServer(cfg *config.ServerConfig, store database.Store, logger *slog.Logger, webhook http.Handler, now func() time.Time) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		store:  store,
		logger: logger.With("component", "web"),
		now:    now,
		srv: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: engine,
		},
	}

	engine.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	engine.Use(s.requestLogger())

	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealth)
	engine.POST("/api/reminders", s.handleCreateReminder)
	engine.GET("/api/reminders/:chat_id", s.handleListReminders)
	if webhook != nil {
		engine.POST("/api/webhook", gin.WrapH(webhook))
	}

	return s
}

// Handler exposes the underlying http.Handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully.")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createReminderRequest is the payload of POST /api/reminders, accepted as
// JSON or form-encoded.
type createReminderRequest struct {
	ChatID  string `json:"chat_id" form:"chat_id"`
	Message string `json:"message" form:"message"`
	Date    string `json:"date"    form:"date"`
	Time    string `json:"time"    form:"time"`
}

func (s *Server) handleCreateReminder(c *gin.Context) {
	var req createReminderRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := reminder.ParseDraft(req.ChatID, req.Message, req.Date, req.Time, s.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationReason(err)})
		return
	}

	rec := &database.Reminder{
		ChatID:  draft.ChatID,
		Message: draft.Message,
		DueAt:   draft.DueAt,
	}
	if err := s.store.CreateReminder(c.Request.Context(), rec); err != nil {
		s.logger.Error("Failed to persist reminder", "chat_id", draft.ChatID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reminder"})
		return
	}

	s.logger.Info("Reminder created", "reminder_id", rec.ID, "chat_id", rec.ChatID, "due_at", rec.DueAt)
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"reminder_id": rec.ID,
		"message":     "Reminder set successfully!",
	})
}

func (s *Server) handleListReminders(c *gin.Context) {
	chatID := c.Param("chat_id")

	reminders, err := s.store.ListByRecipient(c.Request.Context(), chatID)
	if err != nil {
		s.logger.Error("Failed to list reminders", "chat_id", chatID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// validationReason maps validator errors to the human-readable reasons
// returned with a 400 response.
func validationReason(err error) string {
	switch {
	case errors.Is(err, reminder.ErrPastDue):
		return "Reminder date must be in the future"
	case errors.Is(err, reminder.ErrEmptyMessage):
		return "Reminder message cannot be empty"
	default:
		return "Invalid date format. Use YYYY-MM-DD HH:MM"
	}
}
