// Package schema defines the synchronous validation contract consumed by the
// router's query validator, and adapters that implement it.
//
// A Schema exposes one operation:
//
//	Validate(raw any) Outcome
//
// An Outcome carries either a validated Value or an ordered list of Issues,
// never both. Schemas must answer synchronously: an Outcome built with Defer
// models an asynchronous schema and is rejected by the router as a contract
// violation.
//
// # Adapters
//
//   - JSON compiles a JSON Schema document (santhosh-tekuri/jsonschema) and
//     coerces query strings to the declared property types.
//   - Struct decodes the query into a Go struct (mapstructure) and checks its
//     `validate` tags (go-playground/validator).
//   - Reflect derives a JSON Schema document from a Go struct
//     (invopop/jsonschema) and compiles it with JSON.
//   - Func adapts a plain function.
//
// # Raw Input
//
// The router hands schemas the caller's url.Values unchanged (nil when the
// request carried no query). Adapters flatten single-valued keys to a string
// and keep repeated keys as a list, so ?q=x becomes {"q": "x"} and
// ?tag=a&tag=b becomes {"tag": ["a", "b"]}.
package schema
