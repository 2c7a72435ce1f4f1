package items

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawPrice es el precio tal como lo mandó el cliente.
// Acepta tanto "12.5" como 12.5 en JSON; null queda vacío.
type RawPrice string

func (price *RawPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*price = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*price = RawPrice(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("price must be a string or a number: %w", err)
	}
	*price = RawPrice(number.String())
	return nil
}
