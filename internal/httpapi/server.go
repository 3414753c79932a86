package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"horse.fit/lingo/internal/detect"
	"horse.fit/lingo/internal/language"
)

// Engine is the detection surface the API exposes. Satisfied by
// *detect.Detector; tests substitute a stub.
type Engine interface {
	Detect(ctx context.Context, text string) detect.Result
	DetectLocal(text string) detect.Result
}

type Options struct {
	Host            string
	Port            int
	MaxTextChars    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	engine Engine
	logger zerolog.Logger
	opts   Options
}

func NewServer(engine Engine, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8091
	}
	maxTextChars := opts.MaxTextChars
	if maxTextChars <= 0 {
		maxTextChars = 2000
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		engine: engine,
		logger: logger,
		opts: Options{
			Host:            host,
			Port:            port,
			MaxTextChars:    maxTextChars,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.engine == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.buildEcho()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	s.logger.Info().Str("host", s.opts.Host).Int("port", s.opts.Port).Msg("lingo api listening")
	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("lingo api stopped")
	return nil
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	e.GET("/healthz", s.handleHealth)
	e.GET("/api/languages", s.handleLanguages)
	e.POST("/api/detect", s.handleDetect)

	return e
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "lingo",
		"time":    time.Now().UTC(),
	})
}

type languageItem struct {
	Code       language.Code `json:"code"`
	Name       string        `json:"name"`
	NativeName string        `json:"native_name"`
}

func (s *Server) handleLanguages(c echo.Context) error {
	codes := language.Supported()
	items := make([]languageItem, 0, len(codes))
	for _, code := range codes {
		items = append(items, languageItem{
			Code:       code,
			Name:       language.Name(code),
			NativeName: language.NativeName(code),
		})
	}
	return success(c, map[string]any{"languages": items})
}

type detectRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleDetect(c echo.Context) error {
	var req detectRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Request body must be JSON with a text field", nil)
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fail(c, http.StatusBadRequest, "text is required", nil)
	}
	if utf8.RuneCountInString(text) > s.opts.MaxTextChars {
		return fail(c, http.StatusBadRequest,
			fmt.Sprintf("text exceeds %d characters", s.opts.MaxTextChars), nil)
	}

	var result detect.Result
	if boolParam(c.QueryParam("sync")) {
		result = s.engine.DetectLocal(text)
	} else {
		result = s.engine.Detect(c.Request().Context(), text)
	}

	return success(c, result)
}

func boolParam(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
