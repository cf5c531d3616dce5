package handler

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/vendora/catalog-api/internal/core/ports"
)

// skuValue accepts a JSON string or number. Numbers keep their literal text.
type skuValue string

func (s *skuValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = skuValue(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Field is left empty; the decoder fills in the member path.
		return &json.UnmarshalTypeError{
			Value: jsonKind(data),
			Type:  reflect.TypeOf(""),
		}
	}
	*s = skuValue(n.String())
	return nil
}

func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "value"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	}
	return "value"
}

// UnmarshalParam lets form and query binding fill the field too.
func (s *skuValue) UnmarshalParam(param string) error {
	*s = skuValue(strings.TrimSpace(param))
	return nil
}

// productRequest is the create and update payload.
type productRequest struct {
	Name     string   `json:"name"     form:"name"     example:"Widget"`
	SKU      skuValue `json:"sku"      form:"sku"      swaggertype:"string" example:"W-100"`
	Price    *float64 `json:"price"    form:"price"    example:"9.99"`
	Quantity *int     `json:"quantity" form:"quantity" example:"5"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:     r.Name,
		SKU:      string(r.SKU),
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}
