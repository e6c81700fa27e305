package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/database"
	"github.com/orderlycore/orderlycore/orderly/database/repositories"
	"github.com/orderlycore/orderlycore/orderly/migration"
)

var migrateFlags struct {
	mongoURI  string
	mongoDB   string
	batchSize int
	reportDir string
}

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "import legacy leveling data from MongoDB into Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := orderly.LoadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(migrateFlags.mongoURI))
		if err != nil {
			return fmt.Errorf("failed to connect to mongo: %w", err)
		}
		defer func() {
			if err := client.Disconnect(ctx); err != nil {
				slog.Warn("Failed to disconnect from mongo", slog.String("type", "sys"), slog.Any("error", err))
			}
		}()

		migrator := migration.NewMigrator(
			client.Database(migrateFlags.mongoDB),
			repositories.NewProgressRepository(db.BunDB()),
			repositories.NewVoiceStatsRepository(db.BunDB()),
			repositories.NewGuildSettingsRepository(db.BunDB()),
		)
		migrator.SetBatchSize(migrateFlags.batchSize)
		migrator.SetReportDir(migrateFlags.reportDir)

		if err := migrator.MigrateAll(ctx); err != nil {
			slog.Error("Migration failed", slog.String("type", "sys"), slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully!", slog.String("type", "sys"))
		return nil
	},
}

func init() {
	f := migrateCMD.Flags()
	f.StringVar(&migrateFlags.mongoURI, "mongo-uri", "mongodb://localhost:27017", "legacy MongoDB connection string")
	f.StringVar(&migrateFlags.mongoDB, "mongo-db", "orderly", "legacy MongoDB database name")
	f.IntVar(&migrateFlags.batchSize, "batch-size", 0, "rows per upsert batch (0 keeps the default)")
	f.StringVar(&migrateFlags.reportDir, "report-dir", ".", "directory for the JSON report, empty to skip")
}
