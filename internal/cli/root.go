// Package cli holds the msgboard command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/msgboard/internal/theme"
	"github.com/debemdeboas/msgboard/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	baseURL    string
	logLevel   string
}

// NewRootCmd builds the command tree. Without a subcommand it runs the
// terminal UI.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "msgboard",
		Short: "Browse and edit messages on a message board backend",
		Long: `msgboard talks to a message board REST backend. Run without a
subcommand to open the terminal UI, or use the subcommands for scripting.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "config file path")
	flags.StringVar(&opts.baseURL, "base-url", "", "backend base URL (overrides api.base_url)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides logging.level)")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the terminal UI",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(cmd, opts)
			},
		},
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newMoveCmd(opts, "up"),
		newMoveCmd(opts, "down"),
		newImportCmd(opts),
		newDraftsCmd(opts),
		newSaveCmd(opts),
	)

	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	a, err := setup(opts, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	a.log.Info().Msg("Starting terminal UI")
	return tui.Run(cmd.Context(), a.editor, theme.Get(a.cfg.Theme.Default))
}
