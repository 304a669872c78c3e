package router

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/vroute/pkg/schema"
)

// OpenAPIGenerator describes a router's routes as an OpenAPI 3.1 document.
// Every route becomes a GET operation. Path parameters come from the
// pattern; query parameters come from the route's JSON Schema, when it has
// one.
type OpenAPIGenerator struct {
	router *Router
	info   OpenAPIInfo
}

// OpenAPIInfo contains API metadata.
type OpenAPIInfo struct {
	Title       string
	Description string
	Version     string
}

// NewOpenAPIGenerator creates a new OpenAPI generator.
func NewOpenAPIGenerator(r *Router, info OpenAPIInfo) *OpenAPIGenerator {
	if info.Title == "" {
		info.Title = "API"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}
	return &OpenAPIGenerator{
		router: r,
		info:   info,
	}
}

// OpenAPISpec represents an OpenAPI 3.1 specification.
type OpenAPISpec struct {
	OpenAPI string                 `json:"openapi"`
	Info    OpenAPISpecInfo        `json:"info"`
	Paths   map[string]OpenAPIPath `json:"paths"`
}

// OpenAPISpecInfo contains API info.
type OpenAPISpecInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// OpenAPIPath represents path operations.
type OpenAPIPath map[string]*OpenAPIOperation

// OpenAPIOperation represents an HTTP operation.
type OpenAPIOperation struct {
	Summary     string                     `json:"summary,omitempty"`
	OperationID string                     `json:"operationId,omitempty"`
	Tags        []string                   `json:"tags,omitempty"`
	Parameters  []OpenAPIParameter         `json:"parameters,omitempty"`
	Responses   map[string]OpenAPIResponse `json:"responses"`
}

// OpenAPIParameter represents a request parameter.
type OpenAPIParameter struct {
	Name        string `json:"name"`
	In          string `json:"in"` // path, query
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`

	// Schema is an *OpenAPISchema for path params and the raw property
	// schema (json.RawMessage) for query params.
	Schema any `json:"schema"`
}

// OpenAPIResponse represents a response.
type OpenAPIResponse struct {
	Description string `json:"description"`
}

// OpenAPISchema represents a JSON schema.
type OpenAPISchema struct {
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
}

// Route tags read by the generator.
const (
	OpenAPISummaryTag = "summary"
	OpenAPIGroupTag   = "group"
)

// Generate creates the OpenAPI document as indented JSON.
func (g *OpenAPIGenerator) Generate() ([]byte, error) {
	spec, err := g.Spec()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(spec, "", "  ")
}

// Spec builds the OpenAPI document. Routes are visited most specific
// first; when two patterns map to the same OpenAPI path, the first wins.
func (g *OpenAPIGenerator) Spec() (*OpenAPISpec, error) {
	spec := &OpenAPISpec{
		OpenAPI: "3.1.0",
		Info: OpenAPISpecInfo{
			Title:       g.info.Title,
			Description: g.info.Description,
			Version:     g.info.Version,
		},
		Paths: make(map[string]OpenAPIPath),
	}

	for _, info := range g.router.Routes() {
		route, ok := g.router.Route(info.Name)
		if !ok {
			continue
		}

		path := openAPIPath(route.pattern)
		if _, exists := spec.Paths[path]; exists {
			continue
		}

		op, err := g.operation(info.Name, route)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", info.Name, err)
		}
		spec.Paths[path] = OpenAPIPath{"get": op}
	}

	return spec, nil
}

func (g *OpenAPIGenerator) operation(name string, route *Route) (*OpenAPIOperation, error) {
	op := &OpenAPIOperation{
		OperationID: name,
		Responses: map[string]OpenAPIResponse{
			"200": {Description: "OK"},
		},
	}
	if summary, ok := route.Tag(OpenAPISummaryTag); ok {
		op.Summary = summary
	}
	if group, ok := route.Tag(OpenAPIGroupTag); ok {
		op.Tags = []string{group}
	}

	for _, seg := range route.pattern.segments {
		if !seg.dynamic() {
			continue
		}
		param := OpenAPIParameter{
			Name:     seg.Name,
			In:       "path",
			Required: true,
			Schema:   paramTypeToSchema(seg.Type),
		}
		if seg.Kind == CatchAll {
			param.Description = "Remaining path, may contain '/'."
		}
		op.Parameters = append(op.Parameters, param)
	}

	query, err := queryParameters(route.query)
	if err != nil {
		return nil, err
	}
	op.Parameters = append(op.Parameters, query...)

	return op, nil
}

// openAPIPath converts "/users/:id/**:rest" to "/users/{id}/{rest}".
func openAPIPath(p Pattern) string {
	if len(p.segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		if seg.dynamic() {
			sb.WriteString("{" + seg.Name + "}")
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// paramTypeToSchema maps a type hint to an OpenAPI schema.
func paramTypeToSchema(hint string) *OpenAPISchema {
	switch hint {
	case "int", "int64", "int32", "int16", "int8":
		return &OpenAPISchema{Type: "integer"}
	case "uint", "uint64", "uint32", "uint16", "uint8":
		return &OpenAPISchema{Type: "integer", Format: "uint"}
	case "float", "float64", "float32":
		return &OpenAPISchema{Type: "number"}
	case "bool":
		return &OpenAPISchema{Type: "boolean"}
	case "uuid":
		return &OpenAPISchema{Type: "string", Format: "uuid"}
	case "ulid":
		return &OpenAPISchema{Type: "string", Format: "ulid"}
	default:
		return &OpenAPISchema{Type: "string"}
	}
}

// queryParameters lists the properties of a JSON Schema query as query
// parameters. Schemas without a JSON source contribute nothing.
func queryParameters(s schema.Schema) ([]OpenAPIParameter, error) {
	src, ok := s.(interface{ Source() string })
	if !ok {
		return nil, nil
	}

	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	if err := json.Unmarshal([]byte(src.Source()), &doc); err != nil {
		return nil, fmt.Errorf("decode query schema: %w", err)
	}

	required := make(map[string]bool, len(doc.Required))
	for _, name := range doc.Required {
		required[name] = true
	}

	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]OpenAPIParameter, 0, len(names))
	for _, name := range names {
		params = append(params, OpenAPIParameter{
			Name:     name,
			In:       "query",
			Required: required[name],
			Schema:   doc.Properties[name],
		})
	}
	return params, nil
}
