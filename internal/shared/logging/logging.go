// Package logging builds the process slog logger and carries per-request
// attributes through context.Context.
//
// Every record passes through a redaction hook: attribute keys that look
// sensitive are replaced by RedactedValue, recursively through maps of any
// value type, slices, arrays, structs and groups.
package logging

import (
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"erpinterno/internal/shared/tenant"
)

const RedactedValue = "[REDACTED]"

var sensitiveKeys = []string{
	"password",
	"token",
	"secret",
	"key",
	"creditcard",
	"cardnumber",
	"cvv",
	"pin",
	"ssn",
	"cpf",
	"apikey",
	"privatekey",
	"refreshtoken",
}

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: redactAttr,
	}
	if strings.EqualFold(opts.Format, "text") {
		return slog.New(slog.NewTextHandler(out, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(out, handlerOpts))
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsSensitiveKey matches case-insensitively on substrings of the denylist.
func IsSensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, candidate := range sensitiveKeys {
		if strings.Contains(lowered, candidate) {
			return true
		}
	}
	return false
}

// Redact returns a deep copy of fields with sensitive values masked.
func Redact(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if IsSensitiveKey(k) {
			out[k] = RedactedValue
			continue
		}
		out[k] = redactValue(v)
	}
	return out
}

// maxRedactDepth bounds the walk over self-referencing values. Anything
// deeper is masked.
const maxRedactDepth = 16

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	errorType         = reflect.TypeFor[error]()
)

func redactValue(v any) any {
	if v == nil {
		return nil
	}
	return redactReflect(reflect.ValueOf(v), 0)
}

// redactReflect rebuilds maps with string-like keys, slices, arrays and
// structs as map[string]any / []any with sensitive keys masked at every
// level. Values that render themselves (errors, marshalers) and scalars are
// returned as-is.
func redactReflect(rv reflect.Value, depth int) any {
	if !rv.IsValid() {
		return nil
	}
	if depth > maxRedactDepth {
		return RedactedValue
	}
	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface && rendersItself(rv.Type()) {
		return interfaceOf(rv)
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		if rendersItself(rv.Type()) {
			return interfaceOf(rv)
		}
		return redactReflect(rv.Elem(), depth+1)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := mapKey(iter.Key())
			if IsSensitiveKey(key) {
				out[key] = RedactedValue
				continue
			}
			out[key] = redactReflect(iter.Value(), depth+1)
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return interfaceOf(rv)
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = redactReflect(rv.Index(i), depth+1)
		}
		return out
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		redactStruct(rv, out, depth)
		return out
	default:
		return interfaceOf(rv)
	}
}

// interfaceOf drops values reached through unexported embedded fields,
// which reflect cannot hand out.
func interfaceOf(rv reflect.Value) any {
	if !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

// redactStruct copies exported fields under their JSON names. Untagged
// embedded structs are flattened, as encoding/json does.
func redactStruct(rv reflect.Value, out map[string]any, depth int) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, omitEmpty, skip := jsonField(field)
		if skip {
			continue
		}
		value := rv.Field(i)
		if field.Anonymous && name == "" {
			inner := value
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct && !rendersItself(inner.Type()) {
				redactStruct(inner, out, depth)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if omitEmpty && value.IsZero() {
			continue
		}
		if IsSensitiveKey(name) || IsSensitiveKey(field.Name) {
			out[name] = RedactedValue
			continue
		}
		out[name] = redactReflect(value, depth+1)
	}
}

func jsonField(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return "", false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	return name, strings.Contains(opts, "omitempty"), false
}

func mapKey(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprint(key.Interface())
}

func rendersItself(t reflect.Type) bool {
	return t.Implements(errorType) || t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType)
}

// redactAttr is the slog ReplaceAttr hook. Built-in keys are left alone.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey, slog.LevelKey, slog.MessageKey, slog.SourceKey:
			return a
		}
	}
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, RedactedValue)
	}
	if a.Value.Kind() == slog.KindAny {
		return slog.Any(a.Key, redactValue(a.Value.Any()))
	}
	return a
}

// WithRequest stores the request context for later logger enrichment.
func WithRequest(ctx context.Context, rc tenant.RequestContext) context.Context {
	return tenant.NewContext(ctx, rc)
}

// FromContext returns base enriched with the stored request attributes.
// A context without request data yields base unchanged.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if ctx == nil {
		return base
	}
	rc, ok := tenant.FromContext(ctx)
	if !ok {
		return base
	}
	attrs := []any{
		"tenant_id", rc.TenantID,
		"request_id", rc.RequestID,
		"correlation_id", rc.CorrelationID,
	}
	if rc.UserID != "" {
		attrs = append(attrs, "user_id", rc.UserID)
	}
	return base.With(attrs...)
}
