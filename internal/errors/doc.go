// Package errors provides structured, actionable error messages for vroute.
//
// Every routing failure that a developer can act on has a stable code
// (e.g., "E101") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
//   - pattern: Malformed route patterns (catch-all not last, duplicate names)
//   - build: Router construction failures (conflicting constraints)
//   - query: Query schema failures and contract violations
//   - config: Route manifest loading errors
//   - cli: Command line usage errors
//
// # Usage
//
//	err := errors.New("E101").
//	    WithPattern("/files/**:rest/edit").
//	    WithSuggestion("Move the catch-all segment to the end of the pattern")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Catch-all segment must be the last segment
//	//
//	//   /files/**:rest/edit
//	//
//	//   Hint: Move the catch-all segment to the end of the pattern
//	//
//	//   Learn more: https://vango.dev/docs/routing/errors/E101
package errors
