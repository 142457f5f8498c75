package serve_lsp

import (
	"context"
	"os"

	"github.com/creachadair/jrpc2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/config"
	"github.com/walteh/mdprogress/pkg/debug"
	"github.com/walteh/mdprogress/pkg/emoji"
	"github.com/walteh/mdprogress/pkg/lsp"
	"github.com/walteh/mdprogress/pkg/lsp/protocol"
)

type Handler struct {
	debug       bool
	logToClient bool
	configPath  string
	symbolsPath string
	version     string
}

func NewServeLSPCommand(version string) *cobra.Command {
	me := &Handler{version: version}

	cmd := &cobra.Command{
		Use:   "serve-lsp",
		Short: "start the language server on stdio",
	}

	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&me.logToClient, "log-to-client", false, "forward log lines to the editor as window/logMessage")
	cmd.Flags().StringVar(&me.configPath, "config", "", "config file, discovered in the working directory when empty")
	cmd.Flags().StringVar(&me.symbolsPath, "symbols", "", "emoji symbol table, overrides the config file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	logger := debug.NewLogger(os.Stderr, debug.LevelFor(me.debug)).With().Str("component", "lsp-server").Logger()
	ctx = logger.WithContext(ctx)

	fs := afero.NewOsFs()

	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	cfg, cfgPath, err := config.Resolve(fs, me.configPath, wd)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	var symbols *emoji.Table
	if cfg.EmojiEnabled() {
		symbols = emoji.Load(ctx, fs, me.symbolTable(cfg, cfgPath))
	}

	zerolog.Ctx(ctx).Info().Str("config", cfgPath).Int("symbols", symbols.Len()).Str("version", me.version).Msg("starting language server")

	server := lsp.NewServer(ctx, lsp.Options{
		Config:      cfg,
		Symbols:     symbols,
		Fs:          fs,
		Version:     me.version,
		LogToClient: me.logToClient,
	})

	instance := server.BuildServerInstance(ctx, &jrpc2.ServerOptions{
		RPCLog:      &protocol.ZerologRPCLogger{},
		Concurrency: 1,
	})

	if err := instance.StartAndWait(os.Stdin, os.Stdout); err != nil {
		return errors.Errorf("error running language server: %w", err)
	}

	return nil
}

func (me *Handler) symbolTable(cfg *config.Config, cfgPath string) string {
	if me.symbolsPath != "" {
		return me.symbolsPath
	}
	if path := cfg.SymbolTablePath(cfgPath); path != "" {
		return path
	}
	return emoji.DefaultTablePath()
}
