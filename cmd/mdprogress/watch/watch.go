package watch

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/checklist"
	"github.com/walteh/mdprogress/pkg/config"
	"github.com/walteh/mdprogress/pkg/debug"
	"github.com/walteh/mdprogress/pkg/mdfile"
)

type Handler struct {
	debug      bool
	configPath string
}

func NewWatchCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:           "watch [dir]",
		Short:         "synchronize markdown files whenever they are written",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&me.configPath, "config", "", "config file, discovered in the watched directory when empty")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return me.Run(cmd.Context(), dir)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, dir string) error {
	ctx = debug.NewConsoleLogger(os.Stderr, debug.LevelFor(me.debug), !color.NoColor).WithContext(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fs := afero.NewOsFs()

	cfg, cfgPath, err := config.Resolve(fs, me.configPath, dir)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	sync := checklist.NewSynchronizer(cfg.BarStyle())

	// one full pass before the first event
	files, err := mdfile.Expand(fs, cfg, []string{dir})
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}
	if _, err := mdfile.SyncAll(ctx, fs, files, sync, true); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("initial synchronization incomplete")
	}

	w, err := mdfile.NewWatcher(ctx, fs, cfg, sync, dir)
	if err != nil {
		return err
	}
	defer w.Close()

	zerolog.Ctx(ctx).Info().Str("dir", dir).Str("config", cfgPath).Int("files", len(files)).Msg("watching")

	return w.Run(ctx)
}
