package database

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"bridgeforum/internal/middleware"

	"gorm.io/gorm"
)

// MigrationLog records an applied migration.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	Checksum  string    `gorm:"size:64"`
	AppliedAt time.Time `gorm:"autoCreateTime;index"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

// Migrator applies a fixed migration set and tracks it in migration_logs.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// NewMigrator binds ms to db. ms must be ordered by version.
func NewMigrator(db *gorm.DB, ms []Migration) *Migrator {
	return &Migrator{db: db, migrations: ms}
}

func (m *Migrator) ensureLogTable(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&MigrationLog{}); err != nil {
		return fmt.Errorf("failed to ensure migration logs table: %w", err)
	}
	return nil
}

// Applied returns the migration log ordered by version. A missing log table means nothing ran.
func (m *Migrator) Applied(ctx context.Context) ([]MigrationLog, error) {
	if !m.db.WithContext(ctx).Migrator().HasTable(&MigrationLog{}) {
		return nil, nil
	}
	var logs []MigrationLog
	if err := m.db.WithContext(ctx).Order("version ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return logs, nil
}

// Pending lists registered migrations that are not in the log.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	logs, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[int]bool, len(logs))
	for _, l := range logs {
		done[l.Version] = true
	}
	var pending []Migration
	for _, mg := range m.migrations {
		if !done[mg.Version] {
			pending = append(pending, mg)
		}
	}
	return pending, nil
}

// Up applies pending migrations in order. Each script and its log row commit together.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureLogTable(ctx); err != nil {
		return 0, err
	}
	logs, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}
	if err := validateAppliedVersions(versionsOf(logs), m.migrations); err != nil {
		return 0, err
	}
	m.warnOnDrift(ctx, logs)

	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}
	for i, mg := range pending {
		middleware.Logger.InfoContext(ctx, "Applying migration", slog.String("migration", mg.String()))
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mg.UpScript).Error; err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mg, err)
			}
			return tx.Create(&MigrationLog{Version: mg.Version, Name: mg.Name, Checksum: mg.Checksum}).Error
		})
		if err != nil {
			return i, err
		}
	}
	return len(pending), nil
}

// Down reverts one applied migration.
func (m *Migrator) Down(ctx context.Context, version int) error {
	var target *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == version {
			target = &m.migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	logs, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	applied := false
	for _, l := range logs {
		applied = applied || l.Version == version
	}
	if !applied {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	middleware.Logger.InfoContext(ctx, "Rolling back migration", slog.String("migration", target.String()))
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(target.DownScript).Error; err != nil {
			return fmt.Errorf("failed to run rollback SQL for migration %s: %w", target, err)
		}
		return tx.Where("version = ?", version).Delete(&MigrationLog{}).Error
	})
}

// warnOnDrift logs applied migrations whose embedded script changed afterwards.
func (m *Migrator) warnOnDrift(ctx context.Context, logs []MigrationLog) {
	sums := make(map[int]string, len(m.migrations))
	for _, mg := range m.migrations {
		sums[mg.Version] = mg.Checksum
	}
	for _, l := range logs {
		if l.Checksum != "" && sums[l.Version] != "" && l.Checksum != sums[l.Version] {
			middleware.Logger.WarnContext(ctx, "Applied migration was edited after it ran",
				slog.Int("version", l.Version), slog.String("name", l.Name))
		}
	}
}

func versionsOf(logs []MigrationLog) []int {
	out := make([]int, len(logs))
	for i, l := range logs {
		out[i] = l.Version
	}
	return out
}

// RunMigrations applies the embedded forum migrations.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	n, err := NewMigrator(db, migrations).Up(ctx)
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "SQL migrations up to date", slog.Int("applied", n))
	return nil
}

// RollbackMigration reverts one embedded migration.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	return NewMigrator(db, migrations).Down(ctx, version)
}

// validateAppliedVersions refuses to run against a log that knows versions this build does not.
func validateAppliedVersions(applied []int, registered []Migration) error {
	known := make(map[int]struct{}, len(registered))
	for _, m := range registered {
		known[m.Version] = struct{}{}
	}

	var unknown []string
	sort.Ints(applied)
	for _, version := range applied {
		if _, ok := known[version]; !ok {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return fmt.Errorf("migration_logs contains unknown versions not present in code: %s", strings.Join(unknown, ", "))
}
