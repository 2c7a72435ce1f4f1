package items

import "strings"

// Store mantiene la colección ordenada de una sesión y asigna los IDs.
// No es seguro para uso concurrente: el Repository serializa el acceso.
type Store struct {
	items []Item
}

// NewStore crea un Store con los items dados, en ese orden.
func NewStore(initial ...Item) *Store {
	items := make([]Item, len(initial))
	copy(items, initial)
	return &Store{items: items}
}

// NextID devuelve 1 si no hay items; si no, el máximo ID + 1.
// Nunca reutiliza un ID vigente aunque haya huecos por borrados.
func (store *Store) NextID() int {
	maxID := 0
	for _, item := range store.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

// Add agrega al final un item ya validado. No falla: validar es tarea del llamador.
func (store *Store) Add(input ItemInput) Item {
	item := Item{
		ID:       store.NextID(),
		Name:     strings.TrimSpace(input.Name),
		Category: input.Category,
		Price:    input.Price,
	}
	store.items = append(store.items, item)
	return item
}

// Remove borra el item con ese ID. Si no existe no hace nada.
func (store *Store) Remove(id int) bool {
	for index, item := range store.items {
		if item.ID == id {
			store.items = append(store.items[:index], store.items[index+1:]...)
			return true
		}
	}
	return false
}

// Items devuelve una copia para que nadie mute la colección desde afuera.
func (store *Store) Items() []Item {
	out := make([]Item, len(store.items))
	copy(out, store.items)
	return out
}

func (store *Store) Len() int {
	return len(store.items)
}
