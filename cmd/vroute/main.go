package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┬─┐┌─┐┬ ┬┌┬┐┌─┐
  ╚╗╔╝├┬┘│ ││ │ │ ├┤
   ╚╝ ┴└─└─┘└─┘ ┴ └─┘
`

// globalFlags are shared by every command.
type globalFlags struct {
	manifest string
	logLevel string
	noColor  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vroute",
		Short: "Inspect and test route manifests",
		Long: `vroute loads a route manifest (vroute.json, vroute.yaml or vroute.toml)
and builds the router it describes.

Use it to:

  • List registered routes in precedence order
  • Resolve paths and see params and validated query values
  • Check a manifest for pattern and constraint errors
  • Build paths from route names
  • Export an OpenAPI description`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.manifest, "manifest", "m", "", "Manifest file (default: search from the working directory)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		routesCmd(flags),
		matchCmd(flags),
		pathCmd(flags),
		checkCmd(flags),
		openAPICmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// loadManifest reads the manifest named by --manifest, or the nearest one.
func (f *globalFlags) loadManifest() (*config.Manifest, error) {
	if f.manifest != "" {
		return config.LoadFile(f.manifest)
	}
	return config.LoadFromWorkingDir()
}

// logger builds the CLI logger at the manifest's level unless overridden.
func (f *globalFlags) logger(m *config.Manifest, w io.Writer) (*slog.Logger, error) {
	level := m.LogLevel()
	if f.logLevel != "" {
		if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
			return nil, errors.New("E181").
				WithDetail("Unknown log level " + f.logLevel).
				WithSuggestion("Use one of debug, info, warn, error")
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// buildRouter loads the manifest and builds its router. Logs go to stderr.
func (f *globalFlags) buildRouter(cmd *cobra.Command) (*config.Manifest, *router.Router, error) {
	m, err := f.loadManifest()
	if err != nil {
		return nil, nil, err
	}
	logger, err := f.logger(m, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	r, err := m.Build(nil, m.Options(logger)...)
	if err != nil {
		return m, nil, err
	}
	return m, r, nil
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
