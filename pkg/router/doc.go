// Package router maps request paths to route handlers.
//
// The router provides:
//   - A pattern compiler for literal, parameter, wildcard and catch-all segments
//   - A segment trie with deterministic precedence between competing patterns
//   - Query validation through a pluggable schema (see package schema)
//   - Request context assembly and handler middleware
//   - Reverse routing and an OpenAPI description of the registered routes
//
// # Patterns
//
// Patterns are "/"-separated; empty components are ignored:
//
//	/users/me            literal
//	/users/:id           parameter, bound as "id"
//	/users/:id:int       parameter with a type hint
//	/a/*/b               unnamed wildcard, bound as "_0"
//	/a/*:slug            named wildcard
//	/files/**            catch-all, bound as "_"
//	/files/**:rest       named catch-all
//	/files/*rest         named catch-all
//
// # Precedence
//
// Static segments beat dynamic ones at every depth, and catch-alls are only
// tried once no fixed-depth pattern matches the whole path. Among equally
// specific patterns the first registered wins. Registering an identical
// pattern again replaces the earlier route, which lets a route collection
// override an imported one.
//
// # Usage
//
//	routes := router.Routes{}.
//	    Add("home", router.Define("/", home.Page)).
//	    Add("user", router.Define("/users/:id", users.Show)).
//	    Add("search", router.Define("/search", search.Page,
//	        router.WithQuery(schema.MustJSON(searchSchema))))
//
//	r, err := router.Build(routes, router.WithShared(services))
//	if err != nil {
//	    return err
//	}
//
//	res, ok := r.Resolve("/users/42", nil)
//	if ok {
//	    // res.Params["id"] == "42"
//	    // res.Component, res.Loader, res.Meta come from the handler
//	}
//
// Resolve is synchronous and safe for concurrent use. A query schema that
// returns a deferred outcome is a programming error and panics with
// *ContractViolation.
package router
