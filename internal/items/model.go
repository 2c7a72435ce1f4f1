package items

// Category es el conjunto cerrado de categorías admitidas.
type Category string

const (
	CategoryStationary  Category = "Stationary"
	CategoryKitchenware Category = "Kitchenware"
	CategoryAppliance   Category = "Appliance"
)

// Categories devuelve las categorías en el orden en que se muestran al usuario.
func Categories() []Category {
	return []Category{CategoryStationary, CategoryKitchenware, CategoryAppliance}
}

// Item representa un registro del inventario de una sesión.
// El ID lo asigna siempre el Store, nunca el cliente.
type Item struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    float64  `json:"price"`
}

// ItemInput es un item ya validado, listo para Store.Add.
type ItemInput struct {
	Name     string
	Category Category
	Price    float64
}

// Draft guarda los valores crudos del formulario mientras no se agregan.
// Se conserva tal cual si la validación falla, para que el usuario corrija.
type Draft struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// CreateItemInput representa el payload para crear un item.
// Price llega crudo: el validador decide si es un número aceptable.
type CreateItemInput struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    RawPrice `json:"price"`
}

// Draft convierte el payload en el borrador de la sesión.
func (input CreateItemInput) Draft() Draft {
	return Draft{Name: input.Name, Category: input.Category, Price: string(input.Price)}
}

// State es la foto de una sesión que consume la capa de presentación.
type State struct {
	Items        []Item     `json:"items"`
	ErrorMessage string     `json:"error_message"`
	Draft        Draft      `json:"draft"`
	Categories   []Category `json:"categories"`
}

// seedItems son los items con los que arranca cada sesión nueva.
func seedItems() []Item {
	return []Item{
		{ID: 1, Name: "Color Pencil set 32", Category: CategoryStationary, Price: 11.99},
		{ID: 2, Name: "Small Kitty Lamp", Category: CategoryAppliance, Price: 44.88},
		{ID: 3, Name: "Knife Set 4pcs", Category: CategoryKitchenware, Price: 23.11},
	}
}
