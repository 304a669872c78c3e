package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	var (
		tag    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes in precedence order",
		Long: `List every route the manifest registers, most specific first.

Examples:
  vroute routes                     # Table of all routes
  vroute routes --tag group=admin   # Only routes tagged group=admin
  vroute routes --json              # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := flags.buildRouter(cmd)
			if err != nil {
				return err
			}

			infos := r.Routes()
			if tag != "" {
				key, value, ok := strings.Cut(tag, "=")
				if !ok {
					return errors.New("E181").
						WithDetail("--tag expects key=value, got " + tag)
				}
				infos = r.Filter(key, value)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			return writeRouteTable(cmd.OutOrStdout(), infos)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only list routes with this tag (key=value)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func writeRouteTable(w io.Writer, infos []router.RouteInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATTERN\tPARAMS\tQUERY\tTAGS")
	for _, ri := range infos {
		query := "-"
		if ri.HasQuery {
			query = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ri.Name, ri.Pattern, orDash(strings.Join(ri.ParamNames, ",")), query, orDash(formatTags(ri.Tags)))
	}
	return tw.Flush()
}

func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + tags[k]
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
