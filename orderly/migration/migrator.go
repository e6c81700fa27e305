package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/database/models"
)

const (
	tableProgress   = "user_progress"
	tableVoiceStats = "voice_stats"
	tableSettings   = "guild_settings"
)

type ProgressImporter interface {
	ImportBatch(ctx context.Context, rows []models.UserProgress) error
}

type VoiceStatsImporter interface {
	ImportBatch(ctx context.Context, rows []models.VoiceStats) error
}

type SettingsWriter interface {
	Save(ctx context.Context, s *leveling.Settings) error
}

// Migrator copies legacy leveling documents from MongoDB into Postgres.
// Re-running it is safe: every write is an upsert.
type Migrator struct {
	mongoDB   *mongo.Database
	progress  ProgressImporter
	voice     VoiceStatsImporter
	settings  SettingsWriter
	batchSize int
	collNames map[string]string
	reportDir string
	stats     MigrationStats
}

func NewMigrator(mongoDB *mongo.Database, progress ProgressImporter, voice VoiceStatsImporter, settings SettingsWriter) *Migrator {
	return &Migrator{
		mongoDB:   mongoDB,
		progress:  progress,
		voice:     voice,
		settings:  settings,
		batchSize: config.MigrationBatchSize,
		collNames: map[string]string{
			tableProgress:   "levels",
			tableVoiceStats: "voiceStats",
			tableSettings:   "guildSettings",
		},
		reportDir: ".",
	}
}

func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// SetMongoCollectionName overrides the source collection for a target table.
func (m *Migrator) SetMongoCollectionName(table, name string) {
	if _, ok := m.collNames[table]; ok && name != "" {
		m.collNames[table] = name
	}
}

// SetReportDir sets where the JSON report is written. Empty disables it.
func (m *Migrator) SetReportDir(dir string) {
	m.reportDir = dir
}

func (m *Migrator) Stats() MigrationStats {
	return m.stats
}

// MigrateAll imports the three collections concurrently. The tables are
// independent so a failure in one cancels the others.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	logProgress("Starting leveling migration")

	m.stats = MigrationStats{
		Tables: map[string]*TableStats{
			tableProgress:   {TableName: tableProgress},
			tableVoiceStats: {TableName: tableVoiceStats},
			tableSettings:   {TableName: tableSettings},
		},
		StartTime: time.Now(),
	}

	steps := map[string]func(context.Context, *mongo.Cursor, *TableStats) error{
		tableProgress:   m.importLevels,
		tableVoiceStats: m.importVoiceStats,
		tableSettings:   m.importSettings,
	}

	g, gctx := errgroup.WithContext(ctx)
	for table, step := range steps {
		coll := m.mongoDB.Collection(m.collNames[table])
		stats := m.stats.Tables[table]
		g.Go(func() error {
			logProgress(fmt.Sprintf("Starting migration step: %s", table))
			cur, err := coll.Find(gctx, bson.D{})
			if err != nil {
				return fmt.Errorf("failed to query %s: %w", coll.Name(), err)
			}
			defer cur.Close(gctx)

			if err := step(gctx, cur, stats); err != nil {
				return fmt.Errorf("migration failed at step %s: %w", table, err)
			}
			logProgress(fmt.Sprintf("Completed migration step: %s", table))
			return nil
		})
	}
	err := g.Wait()

	m.stats.EndTime = time.Now()
	m.totals()
	if reportErr := m.generateMigrationReport(); reportErr != nil {
		slog.Error("Failed to generate migration report", slog.String("type", "sys"), slog.Any("error", reportErr))
	}
	m.logFinalStats()
	return err
}

func (m *Migrator) importLevels(ctx context.Context, cur *mongo.Cursor, stats *TableStats) error {
	return importCursor(ctx, cur, stats, m.batchSize,
		func(doc LegacyLevel) (string, models.UserProgress, error) {
			row, normalized, err := convertLevel(doc)
			if normalized {
				stats.Normalized++
			}
			return row.GuildID + ":" + row.UserID, row, err
		},
		m.progress.ImportBatch,
	)
}

func (m *Migrator) importVoiceStats(ctx context.Context, cur *mongo.Cursor, stats *TableStats) error {
	return importCursor(ctx, cur, stats, m.batchSize,
		func(doc LegacyVoiceStats) (string, models.VoiceStats, error) {
			row, err := convertVoiceStats(doc)
			return row.GuildID + ":" + row.UserID, row, err
		},
		m.voice.ImportBatch,
	)
}

func (m *Migrator) importSettings(ctx context.Context, cur *mongo.Cursor, stats *TableStats) error {
	return importCursor(ctx, cur, stats, m.batchSize,
		func(doc LegacyGuildSettings) (string, *leveling.Settings, error) {
			s, dropped, err := convertSettings(doc)
			if err != nil {
				return "", nil, err
			}
			if dropped > 0 {
				stats.Normalized++
			}
			return s.GuildID, s, nil
		},
		func(ctx context.Context, rows []*leveling.Settings) error {
			for _, s := range rows {
				if err := m.settings.Save(ctx, s); err != nil {
					return err
				}
			}
			return nil
		},
	)
}

// importCursor decodes, converts and writes documents in batches. Documents
// that fail to decode or convert are recorded and skipped; a failed write
// aborts the step. Within one batch the last document for a key wins.
func importCursor[D, R any](
	ctx context.Context,
	cur *mongo.Cursor,
	stats *TableStats,
	batchSize int,
	convert func(D) (string, R, error),
	write func(context.Context, []R) error,
) error {
	batch := make([]R, 0, batchSize)
	index := make(map[string]int, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := write(ctx, batch); err != nil {
			return err
		}
		stats.Successful += len(batch)
		batch = batch[:0]
		clear(index)
		return nil
	}

	for cur.Next(ctx) {
		stats.Processed++

		var doc D
		if err := cur.Decode(&doc); err != nil {
			stats.fail(err, cur.Current.String())
			continue
		}
		key, row, err := convert(doc)
		if err != nil {
			stats.skip(err.Error(), cur.Current.String())
			continue
		}
		if i, ok := index[key]; ok {
			batch[i] = row
			stats.skip("duplicate document, later one kept", key)
			continue
		}

		index[key] = len(batch)
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("cursor failed: %w", err)
	}
	return flush()
}

func (m *Migrator) totals() {
	m.stats.TotalProcessed, m.stats.TotalSkipped, m.stats.TotalErrors = 0, 0, 0
	for _, t := range m.stats.Tables {
		m.stats.TotalProcessed += t.Processed
		m.stats.TotalSkipped += t.Skipped
		m.stats.TotalErrors += t.Errors
	}
}

func (m *Migrator) generateMigrationReport() error {
	if m.reportDir == "" {
		return nil
	}
	reportFile := filepath.Join(m.reportDir, fmt.Sprintf("migration_report_%s.json", time.Now().Format("20060102_150405")))

	file, err := os.Create(reportFile)
	if err != nil {
		return fmt.Errorf("failed to create migration report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m.stats); err != nil {
		return fmt.Errorf("failed to write migration report: %w", err)
	}

	slog.Info("Migration report generated", slog.String("type", "sys"), slog.String("file", reportFile))
	return nil
}

func (m *Migrator) logFinalStats() {
	slog.Info("Migration completed",
		slog.String("type", "sys"),
		slog.Duration("took", m.stats.EndTime.Sub(m.stats.StartTime)),
		slog.Int("total_processed", m.stats.TotalProcessed),
		slog.Int("total_skipped", m.stats.TotalSkipped),
		slog.Int("total_errors", m.stats.TotalErrors))

	for name, t := range m.stats.Tables {
		slog.Info("Table migration stats",
			slog.String("type", "sys"),
			slog.String("table", name),
			slog.Int("processed", t.Processed),
			slog.Int("successful", t.Successful),
			slog.Int("normalized", t.Normalized),
			slog.Int("skipped", t.Skipped),
			slog.Int("errors", t.Errors))
	}
}

func logProgress(message string) {
	slog.Info(message, slog.String("type", "sys"), slog.String("name", "migration"))
}
