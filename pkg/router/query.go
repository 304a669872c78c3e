package router

import (
	"net/url"

	"github.com/vango-dev/vroute/pkg/schema"
)

// validateQuery runs the route's query schema.
//
// Without a schema the raw query passes through unchanged (nil stays nil).
// A successful validation replaces the query with the schema's output. A
// failed one yields a nil query and a QueryError. A deferred outcome panics
// with *ContractViolation.
func validateQuery(name, path string, s schema.Schema, raw url.Values) (any, *QueryError) {
	if s == nil {
		if raw == nil {
			return nil, nil
		}
		return raw, nil
	}

	out := s.Validate(raw)
	if out.IsDeferred() {
		panic(&ContractViolation{
			Route:  name,
			Path:   path,
			Reason: "query schema returned a deferred outcome; schemas must validate synchronously",
		})
	}

	if len(out.Issues) > 0 {
		return nil, &QueryError{
			Message: QueryErrorMessage,
			Issues:  out.Issues,
		}
	}

	return out.Value, nil
}
