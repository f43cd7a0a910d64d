// Package validation checks request payloads and query parameters and
// reports failures as per-field message lists.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const bodyField = "body"

var (
	cnpjPattern  = regexp.MustCompile(`^\d{14}$`)
	cepPattern   = regexp.MustCompile(`^\d{8}$`)
	colorPattern = regexp.MustCompile(`(?i)^#[0-9a-f]{6}$`)
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

// FieldErrors maps a dot-joined field path to its messages in encounter order.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(fe[field], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (fe FieldErrors) Add(field string, message string) {
	fe[field] = append(fe[field], message)
}

// Err returns nil when fe carries no messages.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})
	mustRegister(v, "cnpj", matches(cnpjPattern))
	mustRegister(v, "cep", matches(cepPattern))
	mustRegister(v, "color6", matches(colorPattern))
	mustRegister(v, "isodatetime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339Nano, fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return err
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return out
}

// Var validates a single value under the given field name.
func (v *Validator) Var(field string, value any, tag string, errs FieldErrors) {
	err := v.validate.Var(value, tag)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(field, message(fe))
		}
		return
	}
	errs.Add(field, "Valor inválido")
}

// DecodeJSON decodes one JSON document into dst. Malformed input is reported
// on the body field; type mismatches on the offending field.
func DecodeJSON(r io.Reader, dst any) error {
	if r == nil {
		return FieldErrors{bodyField: {"Corpo da requisição é obrigatório"}}
	}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return FieldErrors{typeErr.Field: {fmt.Sprintf("Tipo inválido: esperado %s", typeName(typeErr.Type))}}
		}
		if errors.Is(err, io.EOF) {
			return FieldErrors{bodyField: {"Corpo da requisição é obrigatório"}}
		}
		var sizeErr *http.MaxBytesError
		if errors.As(err, &sizeErr) {
			return FieldErrors{bodyField: {fmt.Sprintf("Corpo da requisição excede %d bytes", sizeErr.Limit)}}
		}
		return FieldErrors{bodyField: {"JSON inválido"}}
	}
	if decoder.More() {
		return FieldErrors{bodyField: {"JSON inválido"}}
	}
	return nil
}

// fieldPath strips the root struct and turns index brackets into segments:
// "CreateClientRequest.tags[0]" becomes "tags.0".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		namespace = namespace[idx+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "valor"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Pointer:
		return typeName(t.Elem())
	default:
		return t.String()
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "Email inválido"
	case "url":
		return "URL inválida"
	case "uuid":
		return "ID inválido"
	case "cnpj":
		return "CNPJ deve ter 14 dígitos"
	case "cep":
		return "CEP deve ter 8 dígitos"
	case "color6":
		return "Cor deve estar no formato #RRGGBB"
	case "isodatetime":
		return "Data inválida"
	case "len":
		return fmt.Sprintf("Deve ter exatamente %s caracteres", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor deve ser um de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		if fe.Param() == "0" {
			return "Deve ser positivo"
		}
		return fmt.Sprintf("Deve ser maior que %s", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("Deve ser maior ou igual a %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("Deve ser menor ou igual a %s", fe.Param())
	default:
		return "Valor inválido"
	}
}
