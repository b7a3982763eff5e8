package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/msgboard/internal/api"
	"github.com/debemdeboas/msgboard/internal/model"
)

// withApp runs fn with an app that logs to the command's stderr.
func withApp(cmd *cobra.Command, opts *options, fn func(*app) error) error {
	a, err := setup(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printMessages(w io.Writer, messages []model.Message) {
	for _, m := range messages {
		fmt.Fprintf(w, "%s\t%s\n", m.ID, m.Content)
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every message as id<TAB>content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.editor.Load(cmd.Context()); err != nil {
					return err
				}
				printMessages(cmd.OutOrStdout(), a.editor.Messages())
				return nil
			})
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Submit a new message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				a.editor.SetInput(strings.Join(args, " "))
				return a.editor.Submit(cmd.Context())
			})
		},
	}
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID TEXT",
		Short: "Replace the content of a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseMessageID(args[0])
			if err != nil {
				return err
			}
			text := args[1]

			return withApp(cmd, opts, func(a *app) error {
				ctx := cmd.Context()
				if err := a.editor.Load(ctx); err != nil {
					return err
				}
				msg, ok := a.editor.Find(id)
				if !ok {
					return fmt.Errorf("message %s: %w", id, api.ErrNotFound)
				}
				if msg.Content == text {
					return fmt.Errorf("message %s already has this content", id)
				}

				if err := a.editor.Edit(id, text); err != nil {
					return err
				}
				if err := a.editor.Update(ctx, id); err != nil {
					return err
				}
				if a.editor.HasDraft(id) {
					return fmt.Errorf("message %s: blank content is kept as a draft, not saved", id)
				}
				return nil
			})
		},
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a message",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseMessageID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				return a.editor.Delete(cmd.Context(), id)
			})
		},
	}
}

// newMoveCmd builds "up" and "down". The new order only lives for the
// duration of the command; the backend keeps its own.
func newMoveCmd(opts *options, direction string) *cobra.Command {
	return &cobra.Command{
		Use:   direction + " ID",
		Short: "Move a message " + direction + " in the local order and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseMessageID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				if err := a.editor.Load(cmd.Context()); err != nil {
					return err
				}

				move := a.editor.MoveUp
				if direction == "down" {
					move = a.editor.MoveDown
				}
				if !move(id) {
					fmt.Fprintf(cmd.ErrOrStderr(), "message %s not moved\n", id)
				}

				printMessages(cmd.OutOrStdout(), a.editor.Messages())
				return nil
			})
		},
	}
}

// maxImportLine is the longest line import accepts.
const maxImportLine = 1 << 20

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Submit each non-blank line of FILE as a message (- for stdin)",
		Long: `Submit each non-blank line of FILE as a message, in order. Use - to read
stdin. Lines are sent untrimmed and may be up to 1 MiB long. The first failed
submit stops the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return withApp(cmd, opts, func(a *app) error {
				count := 0
				scanner := bufio.NewScanner(in)
				scanner.Buffer(make([]byte, 0, 64*1024), maxImportLine)
				for scanner.Scan() {
					line := scanner.Text()
					if strings.TrimSpace(line) == "" {
						continue
					}
					a.editor.SetInput(line)
					if err := a.editor.Submit(cmd.Context()); err != nil {
						return fmt.Errorf("imported %d messages: %w", count, err)
					}
					count++
				}
				if err := scanner.Err(); err != nil {
					return err
				}

				a.log.Info().Int("count", count).Msg("Import finished")
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d messages\n", count)
				return nil
			})
		},
	}
}

func newDraftsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "Print unsaved edits as id<TAB>content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				list, err := a.editor.Drafts()
				if err != nil {
					return err
				}
				for _, d := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", d.ID, d.Content)
				}
				return nil
			})
		},
	}
}

func newSaveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save ID",
		Short: "Send the stored draft for a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseMessageID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				ctx := cmd.Context()
				if err := a.editor.Load(ctx); err != nil {
					return err
				}
				if !a.editor.HasDraft(id) {
					return fmt.Errorf("message %s has no draft", id)
				}
				if !a.editor.CanSave(id) {
					return fmt.Errorf("draft for message %s matches the current content", id)
				}
				if err := a.editor.Update(ctx, id); err != nil {
					return err
				}
				if a.editor.HasDraft(id) {
					return fmt.Errorf("message %s: blank content is kept as a draft, not saved", id)
				}
				return nil
			})
		},
	}
}
