package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// ServeOptions carries the resolved settings for the serve command.
type ServeOptions struct {
	Addr      string
	Provider  string
	LogLevel  string
	LogFormat string
}

// ChatServer defines the dependency required to run the serve command.
type ChatServer interface {
	Serve(ctx context.Context, opts ServeOptions) error
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Server           ChatServer
	Args             Arguments
	DefaultAddr      string
	DefaultProvider  string
	DefaultLogLevel  string
	DefaultLogFormat string // json, human, or auto (detect from terminal)
	Version          string
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "aiclone",
		Short: "AI interview clone chat backend",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(serveCommand(deps.Server, deps.DefaultAddr, deps.DefaultProvider, deps.DefaultLogLevel, deps.DefaultLogFormat))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return err
		},
	})

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func serveCommand(server ChatServer, defaultAddr, defaultProvider, defaultLogLevel, defaultLogFormat string) *cobra.Command {
	var addr string
	var provider string
	var logLevel string
	var logFormat string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == nil {
				return fmt.Errorf("serve command not configured")
			}

			resolvedAddr := resolveString(addr, defaultAddr)
			if resolvedAddr == "" {
				resolvedAddr = ":3001"
			}

			return server.Serve(cmd.Context(), ServeOptions{
				Addr:      resolvedAddr,
				Provider:  resolveString(provider, defaultProvider),
				LogLevel:  resolveLogLevel(cmd, logLevel, defaultLogLevel),
				LogFormat: resolveLogFormat(cmd, logFormat, defaultLogFormat, stdoutIsTerminal()),
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&provider, "provider", "", "Model provider to use (overrides config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warning, or error (default from config)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: human, json, or auto (default from config)")

	return cmd
}

// resolveString returns the override value if non-empty, otherwise the default.
func resolveString(override, defaultValue string) string {
	if override != "" {
		return override
	}
	return defaultValue
}

// resolveLogLevel validates and resolves the log level setting.
// Invalid CLI values trigger a warning and fall back to the config default.
func resolveLogLevel(cmd *cobra.Command, cliValue, configDefault string) string {
	if !cmd.Flags().Changed("log-level") || cliValue == "" {
		return configDefault
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warning": true, "error": true}
	if validLevels[cliValue] {
		return cliValue
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: invalid log level %q, using config default %q\n", cliValue, configDefault)
	return configDefault
}

// resolveLogFormat validates and resolves the log format setting.
// The value "auto" (or an empty config default) picks human output on a
// terminal and JSON otherwise.
func resolveLogFormat(cmd *cobra.Command, cliValue, configDefault string, isTerminal bool) string {
	value := configDefault
	if cmd.Flags().Changed("log-format") && cliValue != "" {
		validFormats := map[string]bool{"human": true, "json": true, "auto": true}
		if validFormats[cliValue] {
			value = cliValue
		} else {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: invalid log format %q, using config default %q\n", cliValue, configDefault)
		}
	}

	if value == "" || value == "auto" {
		if isTerminal {
			return "human"
		}
		return "json"
	}
	return value
}
