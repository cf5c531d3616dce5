package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendora/catalog-api/internal/core/domain"
	"github.com/vendora/catalog-api/internal/core/validation"
)

var inputs = validation.New()

// bind decodes the request body into dst. A JSON value of the wrong type is a
// field violation (422), not a malformed request. Every mistyped field is
// reported, not only the first one the decoder met.
func bind(c echo.Context, dst any) error {
	req := c.Request()
	var raw []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload").SetInternal(err)
		}
		raw = b
		req.Body = io.NopCloser(bytes.NewReader(raw))
	}

	err := c.Bind(dst)
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		ve := typeErrors(raw, dst)
		if ve.Empty() && ute.Field != "" {
			ve.Add(ute.Field, typeMessage(ute.Field, ute.Type))
		}
		if !ve.Empty() {
			return ve
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return err
	}
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload").SetInternal(err)
}

// typeErrors decodes each top-level member of body on its own against the
// matching field of dst and collects the members whose JSON type is wrong.
func typeErrors(body []byte, dst any) *domain.ValidationError {
	ve := domain.NewValidationError()

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return ve
	}

	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ve
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		value, ok := members[name]
		if !ok {
			continue
		}
		var ute *json.UnmarshalTypeError
		if err := json.Unmarshal(value, reflect.New(f.Type).Interface()); errors.As(err, &ute) {
			ve.Add(name, typeMessage(name, ute.Type))
		}
	}
	return ve
}

// withInputErrors adds the violations of in to a type-error result from bind,
// so one response lists every bad field. Fields that already carry a type
// error keep only that message. Other errors are returned unchanged.
func withInputErrors(err error, in any) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var more *domain.ValidationError
	if errors.As(inputs.Struct(in), &more) {
		for field, msgs := range more.Fields {
			if _, typed := ve.Fields[field]; typed {
				continue
			}
			for _, msg := range msgs {
				ve.Add(field, msg)
			}
		}
	}
	return ve
}

func typeMessage(field string, t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return field + " is invalid"
	}
	switch t.Kind() {
	case reflect.String:
		return field + " must be a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field + " must be an integer"
	case reflect.Float32, reflect.Float64:
		return field + " must be a number"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
