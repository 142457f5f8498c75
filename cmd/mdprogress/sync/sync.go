package sync

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/mdprogress/pkg/checklist"
	"github.com/walteh/mdprogress/pkg/config"
	"github.com/walteh/mdprogress/pkg/debug"
	"github.com/walteh/mdprogress/pkg/diff"
	"github.com/walteh/mdprogress/pkg/mdfile"
)

type Handler struct {
	check      bool
	diff       bool
	debug      bool
	configPath string

	fs afero.Fs
}

func NewSyncCommand() *cobra.Command {
	return newSyncCommand(afero.NewOsFs())
}

func newSyncCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "sync [paths...]",
		Short: "update checklist counters and progress bars in markdown files",
		Long: "Files are synchronized in place. Directories are searched with the include globs of " +
			"the config, and no path means the working directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&me.check, "check", false, "write nothing and fail when a file is out of date")
	cmd.Flags().BoolVar(&me.diff, "diff", false, "print a diff of every changed file")
	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&me.configPath, "config", "", "config file, discovered in the working directory when empty")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd.OutOrStdout(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer, args []string) error {
	ctx = debug.NewConsoleLogger(os.Stderr, debug.LevelFor(me.debug), !color.NoColor).WithContext(ctx)

	cfg, cfgPath, err := config.Resolve(me.fs, me.configPath, ".")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfgPath).Msg("config resolved")

	files, expandErr := mdfile.Expand(me.fs, cfg, args)

	results, syncErr := mdfile.SyncAll(ctx, me.fs, files, checklist.NewSynchronizer(cfg.BarStyle()), !me.check)

	stale := 0
	for _, res := range results {
		if !res.Changed() {
			continue
		}
		stale++

		switch {
		case me.diff:
			fmt.Fprint(out, diff.Lines(res.Path, res.Before, res.After, !color.NoColor))
		case me.check:
			fmt.Fprintf(out, "out of date: %s\n", res.Path)
		default:
			fmt.Fprintf(out, "updated: %s\n", res.Path)
		}
	}

	zerolog.Ctx(ctx).Debug().Int("files", len(files)).Int("changed", stale).Msg("sync finished")

	if expandErr != nil || syncErr != nil {
		return errors.Errorf("synchronizing files: %w", multierr.Combine(expandErr, syncErr))
	}

	if me.check && stale > 0 {
		return errors.Errorf("%d of %d files are out of date", stale, len(results))
	}

	return nil
}
