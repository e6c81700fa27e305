package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/orderlycore/orderlycore/orderly/logger"
)

var configPath string

var rootCMD = &cobra.Command{
	Use:           "orderlyctl",
	Short:         "OrderlyCore maintenance tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(slog.New(logger.NewHandler("OrderlyCore", slog.LevelInfo)))
	},
}

func init() {
	rootCMD.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCMD.AddCommand(migrateCMD)
}

func Execute(ctx context.Context) error {
	return rootCMD.ExecuteContext(ctx)
}
