package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
)

func pathCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <route> [name=value]... [-- key=value...]",
		Short: "Build a URL from a route name",
		Long: `Build the path for a named route from parameter values. Arguments
after -- become query parameters.

Examples:
  vroute path user id=42
  vroute path files rest=docs/readme.md
  vroute path search -- q=go page=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := flags.buildRouter(cmd)
			if err != nil {
				return err
			}

			paramArgs, queryArgs := args[1:], []string(nil)
			if at := cmd.ArgsLenAtDash(); at >= 1 {
				paramArgs, queryArgs = args[1:at], args[at:]
			}

			params, err := parsePairs(paramArgs)
			if err != nil {
				return err
			}
			queryPairs, err := parsePairs(queryArgs)
			if err != nil {
				return err
			}
			query := url.Values{}
			for k, v := range queryPairs {
				query.Set(k, v)
			}

			u, err := r.URL(args[0], params, query)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	return cmd
}

func parsePairs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	pairs := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, errors.New("E181").
				WithDetail("Expected name=value, got " + arg)
		}
		pairs[k] = v
	}
	return pairs, nil
}
