// Package logger arma el logger estructurado de la app sobre log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Lelo88/item-manager/internal/httpx"
)

// Logger es la interfaz que usan handlers y services.
// La implementación embebe *slog.Logger, así que todo lo de slog queda disponible.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
	ToSlog() *slog.Logger
}

// New devuelve un logger JSON a stdout con el nivel indicado ("debug", "info", ...).
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter es New con destino configurable (tests).
func NewWithWriter(writer io.Writer, level string) Logger {
	options := &slog.HandlerOptions{Level: parseLevel(level)}
	return &slogLogger{Logger: slog.New(&requestIDHandler{slog.NewJSONHandler(writer, options)})}
}

// Discard descarta todo. Útil en tests que no miran logs.
func Discard() Logger {
	return NewWithWriter(io.Discard, "error")
}

type slogLogger struct {
	*slog.Logger
}

func (logger *slogLogger) With(args ...any) Logger {
	return &slogLogger{Logger: logger.Logger.With(args...)}
}

func (logger *slogLogger) ToSlog() *slog.Logger {
	return logger.Logger
}

// requestIDHandler agrega el request id de chi a cada registro con contexto.
type requestIDHandler struct {
	slog.Handler
}

func (handler *requestIDHandler) Handle(ctx context.Context, record slog.Record) error {
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}
	return handler.Handler.Handle(ctx, record)
}

func (handler *requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &requestIDHandler{handler.Handler.WithAttrs(attrs)}
}

func (handler *requestIDHandler) WithGroup(name string) slog.Handler {
	return &requestIDHandler{handler.Handler.WithGroup(name)}
}

// Middleware loguea cada request con status y latencia.
func Middleware(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
			next.ServeHTTP(wrapped, request)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.InfoContext(request.Context(), "request",
				"method", request.Method,
				"path", request.URL.Path,
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", request.RemoteAddr,
			)
		})
	}
}

// Recovery atrapa panics, los loguea y responde 500 con el sobre estándar.
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					if recovered == http.ErrAbortHandler {
						panic(recovered)
					}
					log.ErrorContext(request.Context(), "panic recovered",
						"error", recovered,
						"stack", string(debug.Stack()),
					)
					httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
				}
			}()
			next.ServeHTTP(writer, request)
		})
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
