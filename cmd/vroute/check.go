package main

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest",
		Long: `Load the manifest, compile every pattern and query schema, and run
build-time route validation. Every problem is reported, not just the first.

Ambiguous routes (same structure, different names) are logged as warnings.

Examples:
  vroute check
  vroute check -m routes.yaml --compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, r, err := flags.buildRouter(cmd)
			if err == nil {
				success(cmd.OutOrStdout(), "%d routes OK", r.Len())
				return nil
			}

			var be *router.BuildError
			if m == nil || !stderrors.As(err, &be) {
				return err
			}

			for _, e := range be.Errors {
				printProblem(cmd.ErrOrStderr(), m, e, compact)
			}
			return errors.New("E120").
				WithDetail(fmt.Sprintf("%d problem(s) in %s", len(be.Errors), m.Path()))
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "One line per problem")

	return cmd
}

// printProblem renders a single build error, pointing at the manifest route
// it came from when known.
func printProblem(w io.Writer, m *config.Manifest, err error, compact bool) {
	var re *errors.RouteError
	if !stderrors.As(err, &re) {
		errorMsg(w, "%s", err.Error())
		return
	}

	var def *router.RouteDefError
	if stderrors.As(err, &def) {
		re.WithLocation(m.Path(), def.Name)
	} else if re.Location != nil && re.Location.File == "" {
		re.Location.File = m.Path()
	}

	if compact {
		fmt.Fprintln(w, re.FormatCompact())
		return
	}
	fmt.Fprint(w, re.Format())
}
