package items

import (
	"context"
	"errors"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrorRepositoryClosed = errors.New("session repository closed")
	ErrorMissingSession   = errors.New("missing session id")
)

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// Repository guarda las sesiones en memoria, indexadas por session id.
// Es un LRU acotado: la sesión menos usada se descarta al superar el límite.
type Repository struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *sessionEntry]
	seed    bool
	closed  bool
	onEvict func()
}

// RepositoryOption ajusta la construcción del repositorio.
type RepositoryOption func(*Repository)

// WithEvictHook registra una función que se llama cada vez que se descarta una sesión.
func WithEvictHook(hook func()) RepositoryOption {
	return func(repository *Repository) {
		repository.onEvict = hook
	}
}

// NewRepository crea un repositorio de hasta maxSessions sesiones.
func NewRepository(maxSessions int, seed bool, options ...RepositoryOption) (*Repository, error) {
	repository := &Repository{seed: seed}
	for _, option := range options {
		option(repository)
	}

	entries, err := lru.NewWithEvict[string, *sessionEntry](maxSessions, func(string, *sessionEntry) {
		if repository.onEvict != nil {
			repository.onEvict()
		}
	})
	if err != nil {
		return nil, err
	}
	repository.entries = entries
	return repository, nil
}

// With ejecuta fn con la sesión bloqueada, creándola si no existe.
// created indica si la sesión se creó en esta llamada.
func (repository *Repository) With(ctx context.Context, sessionID string, fn func(*Session) error) (created bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, ErrorMissingSession
	}

	entry, created, err := repository.entry(sessionID)
	if err != nil {
		return false, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// El request pudo cancelarse mientras esperaba el lock.
	if err := ctx.Err(); err != nil {
		return created, err
	}
	return created, fn(entry.session)
}

func (repository *Repository) entry(sessionID string) (*sessionEntry, bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.closed {
		return nil, false, ErrorRepositoryClosed
	}

	if entry, ok := repository.entries.Get(sessionID); ok {
		return entry, false, nil
	}

	entry := &sessionEntry{session: NewSession(repository.seed)}
	repository.entries.Add(sessionID, entry)
	return entry, true, nil
}

// Len devuelve cuántas sesiones hay vivas.
func (repository *Repository) Len() int {
	return repository.entries.Len()
}

// Ping cumple con el chequeo de readiness.
func (repository *Repository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.closed {
		return ErrorRepositoryClosed
	}
	return nil
}

// Close descarta todas las sesiones; las llamadas posteriores fallan.
func (repository *Repository) Close() {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.closed = true
	repository.entries.Purge()
}
