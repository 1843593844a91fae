// Package storage implements the playthrough persistence collaborator on
// sqlite via gorm. Saves replace by id, retention keeps only the newest
// ten, and the full account plus earnings series round-trips exactly
// through a JSON payload column.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
	"github.com/boddenberg/firefly-engine-go/internal/infra/cache"
	"github.com/boddenberg/firefly-engine-go/internal/infra/observability"
)

// MaxPlaythroughs is the retention limit: saving an eleventh playthrough
// evicts the oldest.
const MaxPlaythroughs = 10

const listCacheKey = "playthroughs"

// playthroughRecord is the sqlite row. The indexed columns carry what the
// saves list displays; Payload is the full JSON playthrough for round-trip.
type playthroughRecord struct {
	ID       string    `gorm:"primaryKey;size:36"`
	Year     int       `gorm:"not null"`
	NetWorth string    `gorm:"not null"`
	Date     time.Time `gorm:"index;not null"`
	Payload  []byte    `gorm:"not null"`
}

func (playthroughRecord) TableName() string { return "playthroughs" }

// PlaythroughStore persists playthroughs to sqlite, with a TTL cache in
// front of List. It satisfies port.PlaythroughStore.
type PlaythroughStore struct {
	db      *gorm.DB
	cache   *cache.InMemory[[]domain.Playthrough]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPlaythroughStore opens (or creates) the sqlite database at dbPath and
// migrates the schema.
func NewPlaythroughStore(dbPath string, cacheTTL time.Duration, metrics *observability.Metrics, logger *zap.Logger) (*PlaythroughStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&playthroughRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &PlaythroughStore{
		db:      db,
		cache:   cache.New[[]domain.Playthrough](cacheTTL),
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Save upserts a playthrough by id, then enforces the retention limit by
// evicting the oldest rows. The whole write runs in one transaction so a
// failed save never leaves the list half-updated.
func (s *PlaythroughStore) Save(p *domain.Playthrough) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode playthrough: %w", err)
	}
	record := playthroughRecord{
		ID:       p.ID.String(),
		Year:     p.Year,
		NetWorth: p.NetWorth.StringFixed(2),
		Date:     p.Date,
		Payload:  payload,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing playthroughRecord
		switch err := tx.First(&existing, "id = ?", record.ID).Error; {
		case err == nil:
			if err := tx.Model(&existing).Updates(map[string]any{
				"year": record.Year, "net_worth": record.NetWorth,
				"date": record.Date, "payload": record.Payload,
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var count int64
		if err := tx.Model(&playthroughRecord{}).Count(&count).Error; err != nil {
			return err
		}
		if count > MaxPlaythroughs {
			var oldest []playthroughRecord
			if err := tx.Order("date asc").Limit(int(count) - MaxPlaythroughs).Find(&oldest).Error; err != nil {
				return err
			}
			for _, old := range oldest {
				if err := tx.Delete(&playthroughRecord{}, "id = ?", old.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save playthrough: %w", err)
	}

	s.cache.Delete(listCacheKey)
	s.metrics.IncrPlaythroughSave()
	s.logger.Info("playthrough saved",
		zap.String("playthrough_id", record.ID),
		zap.Int("year", record.Year),
		zap.String("net_worth", record.NetWorth),
	)
	return nil
}

// List returns all retained playthroughs, oldest first.
func (s *PlaythroughStore) List() ([]domain.Playthrough, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		s.metrics.IncrCacheHit(listCacheKey)
		return cached, nil
	}
	s.metrics.IncrCacheMiss(listCacheKey)

	var records []playthroughRecord
	if err := s.db.Order("date asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list playthroughs: %w", err)
	}

	playthroughs := make([]domain.Playthrough, 0, len(records))
	for _, r := range records {
		var p domain.Playthrough
		if err := json.Unmarshal(r.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode playthrough %s: %w", r.ID, err)
		}
		playthroughs = append(playthroughs, p)
	}

	s.cache.Set(listCacheKey, playthroughs)
	return playthroughs, nil
}

// Delete removes one playthrough by id. Deleting an unknown id is a no-op.
func (s *PlaythroughStore) Delete(id uuid.UUID) error {
	if err := s.db.Delete(&playthroughRecord{}, "id = ?", id.String()).Error; err != nil {
		return fmt.Errorf("failed to delete playthrough: %w", err)
	}
	s.cache.Delete(listCacheKey)
	s.logger.Info("playthrough deleted", zap.String("playthrough_id", id.String()))
	return nil
}
