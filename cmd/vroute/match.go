package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/schema"
)

// matchOutput is the JSON form of a resolve.
type matchOutput struct {
	URL     string            `json:"url"`
	Matched bool              `json:"matched"`
	Name    string            `json:"name,omitempty"`
	Pattern string            `json:"pattern,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
	Query   any               `json:"query,omitempty"`
	Issues  []schema.Issue    `json:"issues,omitempty"`
}

func matchCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match <url>...",
		Short: "Resolve paths against the manifest",
		Long: `Resolve one or more paths (with optional ?query) and print the matched
route, its params and the validated query value.

The command fails when any path matches no route.

Examples:
  vroute match /users/42
  vroute match '/search?q=go&page=2'
  vroute match /a /b --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := flags.buildRouter(cmd)
			if err != nil {
				return err
			}

			outputs := make([]matchOutput, 0, len(args))
			var missed []string
			for _, raw := range args {
				out := resolveOne(r, raw)
				if !out.Matched {
					missed = append(missed, raw)
				}
				outputs = append(outputs, out)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(w, outputs); err != nil {
					return err
				}
			} else {
				for _, out := range outputs {
					printMatch(w, out)
				}
			}

			if len(missed) > 0 {
				return errors.New("E180").
					WithDetail(fmt.Sprintf("No route matched %q", missed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func resolveOne(r *router.Router, raw string) matchOutput {
	out := matchOutput{URL: raw}
	res, ok := r.ResolveURL(raw)
	if !ok {
		return out
	}
	out.Matched = true
	out.Name = res.Name
	out.Pattern = res.Route.Pattern().String()
	out.Params = res.Params
	out.Query = res.Context.Query
	if qe := res.Context.QueryError; qe != nil {
		out.Issues = qe.Issues
	}
	return out
}

func printMatch(w io.Writer, out matchOutput) {
	if !out.Matched {
		errorMsg(w, "%s: no match", out.URL)
		return
	}

	success(w, "%s → %s (%s)", out.URL, out.Name, out.Pattern)
	names := make([]string, 0, len(out.Params))
	for name := range out.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info(w, "param %s = %q", name, out.Params[name])
	}
	if out.Query != nil {
		info(w, "query %v", out.Query)
	}
	if len(out.Issues) > 0 {
		info(w, "query rejected: %s", router.QueryErrorMessage)
		for _, issue := range out.Issues {
			info(w, "  - %s", issue.String())
		}
	}
}
