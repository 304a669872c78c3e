package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultTag is the struct tag that names query keys.
const DefaultTag = "query"

// StructSchema decodes a query into T and validates it with `validate` tags.
// The outcome value is a T (not a pointer). It is safe for concurrent use.
type StructSchema[T any] struct {
	tag         string
	errorUnused bool
	validate    *validator.Validate
}

// StructOption configures a StructSchema.
type StructOption func(*structConfig)

type structConfig struct {
	tag         string
	errorUnused bool
	validate    *validator.Validate
}

// WithTag sets the struct tag used to name query keys (default "query").
func WithTag(tag string) StructOption {
	return func(c *structConfig) {
		c.tag = tag
	}
}

// WithStrictKeys rejects query keys that do not map to a field.
func WithStrictKeys() StructOption {
	return func(c *structConfig) {
		c.errorUnused = true
	}
}

// WithValidator uses v instead of a fresh validator instance, so custom
// validations registered on v apply. v is used as is: its tag name function
// is left alone and issue paths are still reported by query key.
func WithValidator(v *validator.Validate) StructOption {
	return func(c *structConfig) {
		c.validate = v
	}
}

// Struct returns a schema that decodes queries into T.
//
// Example:
//
//	type Search struct {
//	    Q    string `query:"q" validate:"required"`
//	    Page int    `query:"page" validate:"omitempty,min=1"`
//	}
//
//	router.Define("/search", handler, router.WithQuery(schema.Struct[Search]()))
func Struct[T any](opts ...StructOption) *StructSchema[T] {
	cfg := structConfig{tag: DefaultTag}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := cfg.validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := tagName(fld, cfg.tag)
			if name == "-" {
				return ""
			}
			return name
		})
	}

	return &StructSchema[T]{
		tag:         cfg.tag,
		errorUnused: cfg.errorUnused,
		validate:    v,
	}
}

// Validate implements Schema.
func (s *StructSchema[T]) Validate(raw any) Outcome {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          s.tag,
		WeaklyTypedInput: true,
		ErrorUnused:      s.errorUnused,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return Invalid(Issue{Message: err.Error()})
	}

	if err := decoder.Decode(Flatten(raw)); err != nil {
		return Invalid(decodeIssues(err)...)
	}

	if err := s.validate.Struct(&out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Invalid(Issue{Message: err.Error()})
		}
		issues := make([]Issue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, Issue{
				Message: fe.Error(),
				Path:    fieldPath(reflect.TypeFor[T](), fe.StructNamespace(), s.tag),
			})
		}
		return Invalid(issues...)
	}

	return Valid(out)
}

// decodeIssues splits a joined decode error into one issue per cause.
func decodeIssues(err error) []Issue {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var issues []Issue
		for _, e := range joined.Unwrap() {
			issues = append(issues, Issue{Message: e.Error()})
		}
		if len(issues) > 0 {
			return issues
		}
	}
	return []Issue{{Message: err.Error()}}
}

// fieldPath maps a validator struct namespace ("Search.Page") to query keys
// ("page") using the field tags of typ. Index suffixes such as "[0]" are kept.
func fieldPath(typ reflect.Type, namespace string, tag string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	path := make([]string, 0, len(parts))
	for _, part := range parts {
		name, suffix := part, ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			name, suffix = part[:i], part[i:]
		}

		typ = structType(typ)
		if typ == nil {
			path = append(path, part)
			continue
		}
		fld, ok := typ.FieldByName(name)
		if !ok {
			path = append(path, part)
			typ = nil
			continue
		}
		path = append(path, tagName(fld, tag)+suffix)
		typ = fld.Type
		if suffix != "" {
			typ = elemType(typ)
		}
	}
	return path
}

// tagName returns the query key for a field, falling back to its Go name.
func tagName(fld reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
	if name == "" {
		return fld.Name
	}
	return name
}

func structType(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil
	}
	return typ
}

func elemType(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil {
		return nil
	}
	switch typ.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return typ.Elem()
	}
	return nil
}
