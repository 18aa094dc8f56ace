// Package persistence stores agent snapshots in a relational database
// through GORM, keyed by agent id. The default driver is the pure-Go sqlite
// build, so hosts get durable snapshots without cgo or an external server.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BaSui01/agentwire/config"
)

// SnapshotRecord is the persisted form of one agent snapshot. Saving again
// under the same agent id overwrites the previous snapshot.
type SnapshotRecord struct {
	AgentID   string    `gorm:"primaryKey;column:agent_id"`
	Data      []byte    `gorm:"column:data"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName sets the table name for GORM.
func (SnapshotRecord) TableName() string { return "agent_snapshots" }

// GormSnapshotStore implements agent.SnapshotStore on a GORM database.
type GormSnapshotStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// ErrSnapshotNotFound is returned by Load when no snapshot exists for the
// agent id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Open connects to the configured database and migrates the snapshot table.
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*GormSnapshotStore, error) {
	if cfg.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s (supported: sqlite)", cfg.Driver)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return NewGormSnapshotStore(db, logger)
}

// NewGormSnapshotStore wraps an existing GORM database and migrates the
// snapshot table.
func NewGormSnapshotStore(db *gorm.DB, logger *zap.Logger) (*GormSnapshotStore, error) {
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating snapshot table: %w", err)
	}
	return &GormSnapshotStore{
		db:     db,
		logger: logger.With(zap.String("component", "snapshot-store")),
	}, nil
}

// Save upserts the snapshot for an agent id.
func (s *GormSnapshotStore) Save(ctx context.Context, agentID string, data []byte) error {
	record := SnapshotRecord{
		AgentID:   agentID,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("saving snapshot of %s: %w", agentID, err)
	}
	s.logger.Debug("snapshot saved",
		zap.String("agent_id", agentID),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Load returns the latest snapshot for an agent id.
func (s *GormSnapshotStore) Load(ctx context.Context, agentID string) ([]byte, error) {
	var record SnapshotRecord
	err := s.db.WithContext(ctx).First(&record, "agent_id = ?", agentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, agentID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot of %s: %w", agentID, err)
	}
	return record.Data, nil
}

// Delete removes the snapshot for an agent id, if any.
func (s *GormSnapshotStore) Delete(ctx context.Context, agentID string) error {
	if err := s.db.WithContext(ctx).Delete(&SnapshotRecord{}, "agent_id = ?", agentID).Error; err != nil {
		return fmt.Errorf("deleting snapshot of %s: %w", agentID, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *GormSnapshotStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
