package items

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError es un rechazo de negocio: se devuelve como dato, nunca es fatal.
// Reason es el texto que se muestra tal cual al usuario.
type ValidationError struct {
	Code   string
	Reason string
}

func (validationError *ValidationError) Error() string {
	return validationError.Reason
}

// Errores de validación, en el orden en que se evalúan.
var (
	ErrEmptyName       = &ValidationError{Code: "empty_name", Reason: "Item name must not be empty"}
	ErrDuplicateName   = &ValidationError{Code: "duplicate_name", Reason: "Item must not be duplicated"}
	ErrInvalidCategory = &ValidationError{Code: "invalid_category", Reason: "Please select a category"}
	ErrInvalidPrice    = &ValidationError{Code: "invalid_price", Reason: "Price must not be less than 0"}
)

var (
	validate     = validator.New()
	categoryRule = "required,oneof=" + strings.Join(categoryNames(), " ")
)

func categoryNames() []string {
	categories := Categories()
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, string(category))
	}
	return names
}

// Validate aplica las reglas sobre un candidato contra la colección actual.
// Corta en la primera regla que falla; nil significa que el item se puede agregar.
func Validate(name, category, price string, collection []Item) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	if containsName(collection, name) {
		return ErrDuplicateName
	}

	// "" también cae acá: falta seleccionar.
	if err := validate.Var(category, categoryRule); err != nil {
		return ErrInvalidCategory
	}

	if _, ok := ParsePrice(price); !ok {
		return ErrInvalidPrice
	}

	return nil
}

// ParsePrice interpreta el precio crudo. Vacío o no numérico no es cero: es inválido.
func ParsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	if value < 0 {
		return 0, false
	}

	// -0 se guarda como 0.
	if value == 0 {
		value = 0
	}
	return value, true
}

func containsName(collection []Item, name string) bool {
	key := nameKey(name)
	for _, item := range collection {
		if nameKey(item.Name) == key {
			return true
		}
	}
	return false
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
