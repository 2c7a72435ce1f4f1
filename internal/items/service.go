package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lelo88/item-manager/internal/logger"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidID = errors.New("invalid item id")
)

// Recorder recibe los eventos que interesan para métricas.
type Recorder interface {
	ItemAdded()
	ItemRemoved()
	ValidationFailed(code string)
	SessionOpened()
}

// Service contiene las reglas de negocio de items sobre la sesión de cada usuario.
type Service struct {
	repository *Repository
	recorder   Recorder
	log        logger.Logger
}

// NewService crea un service de items.
func NewService(repository *Repository, recorder Recorder, log logger.Logger) *Service {
	return &Service{repository: repository, recorder: recorder, log: log}
}

// State devuelve items, error vigente y borrador de la sesión.
func (service *Service) State(ctx context.Context, sessionID string) (State, error) {
	var state State
	err := service.with(ctx, sessionID, func(session *Session) error {
		state = session.State()
		return nil
	})
	if err != nil {
		return State{}, err
	}
	return state, nil
}

// List devuelve los items en orden de inserción.
func (service *Service) List(ctx context.Context, sessionID string) ([]Item, error) {
	var items []Item
	err := service.with(ctx, sessionID, func(session *Session) error {
		items = session.Store.Items()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create valida el borrador y lo agrega. Un rechazo se devuelve como *ValidationError
// y queda además guardado como mensaje de error de la sesión.
func (service *Service) Create(ctx context.Context, sessionID string, input CreateItemInput) (Item, error) {
	var item Item
	err := service.with(ctx, sessionID, func(session *Session) error {
		created, err := session.Submit(input.Draft())
		if err != nil {
			return err
		}
		item = created
		return nil
	})
	if err != nil {
		var validationError *ValidationError
		if errors.As(err, &validationError) {
			service.recorder.ValidationFailed(validationError.Code)
			service.log.InfoContext(ctx, "item rejected", "code", validationError.Code)
		}
		return Item{}, err
	}

	service.recorder.ItemAdded()
	service.log.InfoContext(ctx, "item added", "item_id", item.ID, "category", item.Category)
	return item, nil
}

// Delete elimina un item por ID. Un ID que no existe no es error.
func (service *Service) Delete(ctx context.Context, sessionID string, id int) error {
	if id < 1 {
		return ErrorInvalidID
	}

	removed := false
	err := service.with(ctx, sessionID, func(session *Session) error {
		removed = session.Delete(id)
		return nil
	})
	if err != nil {
		return err
	}

	if removed {
		service.recorder.ItemRemoved()
		service.log.InfoContext(ctx, "item removed", "item_id", id)
	}
	return nil
}

func (service *Service) with(ctx context.Context, sessionID string, fn func(*Session) error) error {
	created, err := service.repository.With(ctx, sessionID, fn)
	if created {
		service.recorder.SessionOpened()
		service.log.DebugContext(ctx, "session opened")
	}
	if err != nil {
		var validationError *ValidationError
		if errors.As(err, &validationError) {
			return err
		}
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	return nil
}
