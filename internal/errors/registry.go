package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Pattern Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryPattern,
		Message:  "Invalid route pattern",
		Detail:   "The route pattern could not be parsed.",
		DocURL:   "https://vango.dev/docs/routing/errors/E100",
	},
	"E101": {
		Category: CategoryPattern,
		Message:  "Catch-all segment must be the last segment",
		Detail:   "A catch-all (** or *name) consumes every remaining path component, so nothing may follow it.",
		DocURL:   "https://vango.dev/docs/routing/errors/E101",
	},
	"E102": {
		Category: CategoryPattern,
		Message:  "Duplicate parameter name",
		Detail:   "Each parameter, wildcard and catch-all name may appear at most once in a pattern.",
		DocURL:   "https://vango.dev/docs/routing/errors/E102",
	},
	"E103": {
		Category: CategoryPattern,
		Message:  "Empty parameter name",
		Detail:   "A ':' segment must be followed by a parameter name.",
		DocURL:   "https://vango.dev/docs/routing/errors/E103",
	},
	"E104": {
		Category: CategoryPattern,
		Message:  "Invalid parameter name",
		Detail:   "Parameter names may contain letters, digits, '_' and '-'. Names like _0 and _1 are reserved for unnamed wildcards.",
		DocURL:   "https://vango.dev/docs/routing/errors/E104",
	},

	// ============================================
	// Build Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryBuild,
		Message:  "Router construction failed",
		Detail:   "One or more routes could not be registered. No routes were installed.",
		DocURL:   "https://vango.dev/docs/routing/errors/E120",
	},
	"E121": {
		Category: CategoryBuild,
		Message:  "Conflicting parameter constraints",
		Detail:   "Two routes declare different type hints for the same parameter position.",
		DocURL:   "https://vango.dev/docs/routing/errors/E121",
	},
	"E122": {
		Category: CategoryBuild,
		Message:  "Route has no handler",
		Detail:   "Every route passed to Build must carry a handler function.",
		DocURL:   "https://vango.dev/docs/routing/errors/E122",
	},
	"E123": {
		Category: CategoryBuild,
		Message:  "Unknown route name",
		Detail:   "No route with this name is registered on the router.",
		DocURL:   "https://vango.dev/docs/routing/errors/E123",
	},
	"E124": {
		Category: CategoryBuild,
		Message:  "Missing route parameter",
		Detail:   "Building a path requires a value for every parameter the pattern binds.",
		DocURL:   "https://vango.dev/docs/routing/errors/E124",
	},

	// ============================================
	// Query Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryQuery,
		Message:  "Invalid query parameters",
		Detail:   "The route's query schema rejected the request query.",
		DocURL:   "https://vango.dev/docs/routing/errors/E140",
	},
	"E141": {
		Category: CategoryQuery,
		Message:  "Query schema returned a deferred result",
		Detail:   "Route resolution is synchronous end to end. Query schemas must validate synchronously.",
		DocURL:   "https://vango.dev/docs/routing/errors/E141",
	},
	"E142": {
		Category: CategoryQuery,
		Message:  "Query schema failed to compile",
		Detail:   "The JSON Schema document for the route query is not a valid schema.",
		DocURL:   "https://vango.dev/docs/routing/errors/E142",
	},

	// ============================================
	// Config Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryConfig,
		Message:  "Route manifest not found",
		Detail:   "Could not find a route manifest (vroute.json, vroute.yaml or vroute.toml).",
		DocURL:   "https://vango.dev/docs/routing/errors/E160",
	},
	"E161": {
		Category: CategoryConfig,
		Message:  "Invalid route manifest",
		Detail:   "The route manifest could not be parsed.",
		DocURL:   "https://vango.dev/docs/routing/errors/E161",
	},
	"E162": {
		Category: CategoryConfig,
		Message:  "Unsupported manifest format",
		Detail:   "Route manifests must use the .json, .yaml, .yml or .toml extension.",
		DocURL:   "https://vango.dev/docs/routing/errors/E162",
	},

	// ============================================
	// CLI Errors (E180-E199)
	// ============================================

	"E180": {
		Category: CategoryCLI,
		Message:  "No route matched",
		Detail:   "The path did not match any route in the manifest.",
		DocURL:   "https://vango.dev/docs/routing/errors/E180",
	},
	"E181": {
		Category: CategoryCLI,
		Message:  "Invalid command arguments",
		Detail:   "The command received an unexpected number of arguments.",
		DocURL:   "https://vango.dev/docs/routing/errors/E181",
	},
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// GetAllCodes returns every registered error code in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
