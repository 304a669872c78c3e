package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JSONSchema validates queries against a compiled JSON Schema document.
// It is safe for concurrent use.
type JSONSchema struct {
	schema *jsonschema.Schema
	source string
}

var (
	schemaSeq atomic.Uint64
	printer   = message.NewPrinter(language.English)

	// decimalNumber accepts plain decimal notation only. Hex floats,
	// digit separators and Inf/NaN stay strings.
	decimalNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// JSON compiles a JSON Schema document. The document should describe an
// object whose properties are the query keys.
//
// Example:
//
//	s, err := schema.JSON(`{
//	    "type": "object",
//	    "properties": {"page": {"type": "integer", "minimum": 1}},
//	    "required": ["page"]
//	}`)
func JSON(doc string) (*JSONSchema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()

	loc := fmt.Sprintf("query-%d.json", schemaSeq.Add(1))
	if err := compiler.AddResource(loc, parsed); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &JSONSchema{schema: compiled, source: doc}, nil
}

// MustJSON is like JSON but panics on error.
func MustJSON(doc string) *JSONSchema {
	s, err := JSON(doc)
	if err != nil {
		panic(err)
	}
	return s
}

// Source returns the schema document the validator was compiled from.
func (s *JSONSchema) Source() string {
	return s.source
}

// Validate implements Schema. Query strings are coerced to the types the
// schema declares for each property before validation, and the coerced map
// is the outcome value.
func (s *JSONSchema) Validate(raw any) Outcome {
	data := s.coerce(Flatten(raw))

	if err := s.schema.Validate(data); err != nil {
		verr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return Invalid(Issue{Message: err.Error()})
		}
		var issues []Issue
		collectIssues(verr, &issues)
		return Invalid(issues...)
	}

	return Valid(data)
}

// coerce converts flattened query values into the JSON types declared by the
// schema's properties. Values that cannot be converted are left untouched so
// the schema reports the type mismatch.
func (s *JSONSchema) coerce(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for key, value := range flat {
		prop := propertySchema(s.schema, key, 0)
		if prop == nil {
			out[key] = toJSONValue(value)
			continue
		}
		out[key] = coerceValue(value, prop)
	}
	return out
}

// propertySchema finds the schema declared for key. It follows a $ref on the
// object schema and looks inside allOf branches.
func propertySchema(s *jsonschema.Schema, key string, depth int) *jsonschema.Schema {
	if s == nil || depth > 32 {
		return nil
	}
	if prop, ok := s.Properties[key]; ok {
		return deref(prop)
	}
	if s.Ref != nil {
		if prop := propertySchema(s.Ref, key, depth+1); prop != nil {
			return prop
		}
	}
	for _, branch := range s.AllOf {
		if prop := propertySchema(branch, key, depth+1); prop != nil {
			return prop
		}
	}
	return nil
}

func coerceValue(value any, prop *jsonschema.Schema) any {
	types := declaredTypes(prop)

	if types["array"] {
		items := itemSchema(prop)
		switch v := value.(type) {
		case []string:
			arr := make([]any, len(v))
			for i, item := range v {
				arr[i] = coerceScalar(item, declaredTypes(items))
			}
			return arr
		case string:
			return []any{coerceScalar(v, declaredTypes(items))}
		}
	}

	switch v := value.(type) {
	case string:
		return coerceScalar(v, types)
	case []string:
		return toJSONValue(v)
	}
	return value
}

func coerceScalar(value string, types map[string]bool) any {
	if types["integer"] {
		// Base 10 only: "010" is ten and "0x10" is not a number.
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	if types["number"] && decimalNumber.MatchString(value) {
		if f, err := cast.ToFloat64E(value); err == nil {
			return f
		}
	}
	if types["boolean"] {
		if b, err := cast.ToBoolE(value); err == nil {
			return b
		}
	}
	if types["null"] && value == "" {
		return nil
	}
	return value
}

func toJSONValue(value any) any {
	if v, ok := value.([]string); ok {
		arr := make([]any, len(v))
		for i, item := range v {
			arr[i] = item
		}
		return arr
	}
	return value
}

func declaredTypes(s *jsonschema.Schema) map[string]bool {
	types := make(map[string]bool)
	if s == nil || s.Types == nil {
		return types
	}
	for _, t := range s.Types.ToStrings() {
		types[t] = true
	}
	return types
}

func itemSchema(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Items2020 != nil {
		return deref(s.Items2020)
	}
	if items, ok := s.Items.(*jsonschema.Schema); ok {
		return deref(items)
	}
	return nil
}

// deref follows $ref chains so property types declared in $defs are seen.
func deref(s *jsonschema.Schema) *jsonschema.Schema {
	for i := 0; s != nil && s.Ref != nil && i < 32; i++ {
		s = s.Ref
	}
	return s
}

// collectIssues flattens the validation error tree into leaf issues.
func collectIssues(verr *jsonschema.ValidationError, issues *[]Issue) {
	if verr == nil {
		return
	}
	if len(verr.Causes) == 0 {
		*issues = append(*issues, Issue{
			Message: leafMessage(verr),
			Path:    append([]string(nil), verr.InstanceLocation...),
		})
		return
	}
	for _, cause := range verr.Causes {
		collectIssues(cause, issues)
	}
}

func leafMessage(verr *jsonschema.ValidationError) string {
	if verr.ErrorKind == nil {
		return verr.Error()
	}
	return verr.ErrorKind.LocalizedString(printer)
}
