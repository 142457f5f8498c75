package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	config_schema "github.com/walteh/mdprogress/cmd/mdprogress/config-schema"
	serve_lsp "github.com/walteh/mdprogress/cmd/mdprogress/serve-lsp"
	sync_cmd "github.com/walteh/mdprogress/cmd/mdprogress/sync"
	"github.com/walteh/mdprogress/cmd/mdprogress/watch"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:           "mdprogress",
		Short:         "Keep markdown checklist counters and progress bars up to date",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(serve_lsp.NewServeLSPCommand(rootCmd.Version))
	rootCmd.AddCommand(sync_cmd.NewSyncCommand())
	rootCmd.AddCommand(watch.NewWatchCommand())
	rootCmd.AddCommand(config_schema.NewConfigSchemaCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
