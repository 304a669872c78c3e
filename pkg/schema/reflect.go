package schema

import (
	"encoding/json"
	"fmt"

	invopop "github.com/invopop/jsonschema"
)

// ReflectOption configures Reflect.
type ReflectOption func(*invopop.Reflector)

// AllowAdditionalKeys lets queries carry keys the struct does not declare.
func AllowAdditionalKeys() ReflectOption {
	return func(r *invopop.Reflector) {
		r.AllowAdditionalProperties = true
	}
}

// WithFieldTag names properties from a struct tag other than "query".
func WithFieldTag(tag string) ReflectOption {
	return func(r *invopop.Reflector) {
		r.FieldNameTag = tag
	}
}

// Reflect derives a JSON Schema from T's fields and compiles it with JSON.
// Property names come from the `query` tag; fields without omitempty are
// required. Use `jsonschema` tags for constraints:
//
//	type Filter struct {
//	    Page int      `query:"page,omitempty" jsonschema:"minimum=1"`
//	    Tags []string `query:"tag,omitempty"`
//	}
func Reflect[T any](opts ...ReflectOption) (*JSONSchema, error) {
	doc, err := ReflectDocument[T](opts...)
	if err != nil {
		return nil, err
	}
	return JSON(doc)
}

// MustReflect is like Reflect but panics on error.
func MustReflect[T any](opts ...ReflectOption) *JSONSchema {
	s, err := Reflect[T](opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// ReflectDocument returns the JSON Schema document Reflect would compile.
func ReflectDocument[T any](opts ...ReflectOption) (string, error) {
	r := &invopop.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
		FieldNameTag:   DefaultTag,
	}
	for _, opt := range opts {
		opt(r)
	}

	var zero T
	doc, err := json.Marshal(r.Reflect(&zero))
	if err != nil {
		return "", fmt.Errorf("marshal reflected schema: %w", err)
	}
	return string(doc), nil
}
