package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mytheresa/catalog-api/app/validation"
)

// ErrInvalidJSON is returned when the request body is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON body")

// DecodeJSON decodes the request body into v. An empty body decodes as an empty
// object so that missing fields surface as validation failures. A value of the
// wrong JSON type for a known field becomes a *validation.Error for that field.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		// Only one JSON value may be sent.
		if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
			return ErrInvalidJSON
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validation.Field(typeErr.Field, typeMessage(typeErr.Type.Kind()))
	}

	return ErrInvalidJSON
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	default:
		return "is invalid"
	}
}

// PathID parses the {id} route parameter. ok is false when it is missing or not
// a positive integer.
func PathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
