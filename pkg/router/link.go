package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vango-dev/vroute/internal/errors"
)

// Path builds the path for the named route from params. Every name the
// pattern binds must be present and non-empty. Values are path-escaped;
// catch-all values keep their "/" separators.
//
// Example:
//
//	p, err := r.Path("user.show", map[string]string{"id": "42"}) // "/users/42"
func (r *Router) Path(name string, params map[string]string) (string, error) {
	route, ok := r.routes.Get(name)
	if !ok {
		return "", errors.New(codeUnknownRoute).WithLocation("", name)
	}
	return route.pattern.Expand(params)
}

// URL is like Path and appends query, if non-empty.
func (r *Router) URL(name string, params map[string]string, query url.Values) (string, error) {
	path, err := r.Path(name, params)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path, nil
}

// Expand fills the pattern's dynamic segments from params.
func (p Pattern) Expand(params map[string]string) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		if seg.Kind == Literal {
			sb.WriteString(seg.Text)
			continue
		}

		value, ok := params[seg.Name]
		if !ok || value == "" {
			return "", errors.New(codeMissingParam).
				WithPattern(p.String()).
				WithDetail(fmt.Sprintf("No value for %s %q.", seg.Kind, seg.Name))
		}

		if seg.Kind == CatchAll {
			parts := strings.Split(strings.Trim(value, "/"), "/")
			for i, part := range parts {
				parts[i] = url.PathEscape(part)
			}
			sb.WriteString(strings.Join(parts, "/"))
			continue
		}
		sb.WriteString(url.PathEscape(value))
	}
	return sb.String(), nil
}
