package items

// Session agrupa el estado de un usuario: colección, borrador del formulario
// y último mensaje de error. Se muta solo desde Submit y Delete.
type Session struct {
	Store        *Store
	Draft        Draft
	ErrorMessage string
}

// NewSession crea una sesión; con seed arranca con los items iniciales.
func NewSession(seed bool) *Session {
	if seed {
		return &Session{Store: NewStore(seedItems()...)}
	}
	return &Session{Store: NewStore()}
}

// Submit valida el borrador y, si pasa, agrega el item.
// En error guarda el borrador y el motivo; en éxito limpia ambos.
func (session *Session) Submit(draft Draft) (Item, error) {
	if err := Validate(draft.Name, draft.Category, draft.Price, session.Store.Items()); err != nil {
		session.Draft = draft
		session.ErrorMessage = err.Error()
		return Item{}, err
	}

	price, _ := ParsePrice(draft.Price)
	item := session.Store.Add(ItemInput{
		Name:     draft.Name,
		Category: Category(draft.Category),
		Price:    price,
	})

	session.Draft = Draft{}
	session.ErrorMessage = ""
	return item, nil
}

// Delete borra por ID y limpia el error. Un ID inexistente no es error.
func (session *Session) Delete(id int) bool {
	removed := session.Store.Remove(id)
	session.ErrorMessage = ""
	return removed
}

// State arma la vista de la sesión para la capa de presentación.
func (session *Session) State() State {
	return State{
		Items:        session.Store.Items(),
		ErrorMessage: session.ErrorMessage,
		Draft:        session.Draft,
		Categories:   Categories(),
	}
}
