// Package session identifica al usuario con una cookie firmada y cifrada.
// La cookie solo lleva el session id (UUID); el estado vive en memoria del proceso.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/Lelo88/item-manager/internal/httpx"
	"github.com/Lelo88/item-manager/internal/logger"
)

const (
	CookieName = "item_manager_session"
	idValueKey = "sid"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// ErrSessionIDNotFound indica que el request no pasó por Middleware.
var ErrSessionIDNotFound = errors.New("session id not found in context")

// NewCookieStore crea el store de cookies.
// Si alguna key viene vacía se genera una aleatoria: las sesiones no sobreviven un reinicio.
func NewCookieStore(authKey, encryptionKey []byte, secureCookie bool) (*sessions.CookieStore, error) {
	if len(authKey) == 0 {
		authKey = securecookie.GenerateRandomKey(32)
	}
	if len(encryptionKey) == 0 {
		encryptionKey = securecookie.GenerateRandomKey(32)
	}
	if authKey == nil || encryptionKey == nil {
		return nil, errors.New("could not generate session keys")
	}
	switch len(encryptionKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("session encryption key must be 16, 24 or 32 bytes (got %d)", len(encryptionKey))
	}

	store := sessions.NewCookieStore(authKey, encryptionKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

// IDFromCtx devuelve el session id que dejó Middleware.
func IDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(sessionIDKey).(string)
	if !ok || id == "" {
		return "", ErrSessionIDNotFound
	}
	return id, nil
}

// WithID adjunta el session id al contexto.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// Middleware asegura que cada request tenga un session id.
// Una cookie ilegible o ausente se reemplaza por una sesión nueva.
func Middleware(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookieSession, err := store.Get(request, CookieName)
			if err != nil {
				log.WarnContext(request.Context(), "invalid session cookie, starting a new session", "error", err)
			}
			if cookieSession == nil {
				cookieSession = sessions.NewSession(store, CookieName)
				cookieSession.Options = &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
			}

			id, _ := cookieSession.Values[idValueKey].(string)
			if _, parseErr := uuid.Parse(id); parseErr != nil {
				id = uuid.NewString()
				cookieSession.Values[idValueKey] = id
				if err := cookieSession.Save(request, writer); err != nil {
					log.ErrorContext(request.Context(), "could not save session cookie", "error", err)
					httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
					return
				}
			}

			next.ServeHTTP(writer, request.WithContext(WithID(request.Context(), id)))
		})
	}
}
