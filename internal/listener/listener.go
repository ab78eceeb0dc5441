package listener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"invdash/internal/config"
	"invdash/internal/inventory"
	"invdash/internal/pipeline"
	"invdash/internal/source"
	"invdash/internal/storage"
)

// LastHashKey is the metadata key holding the hash of the last ingested bytes.
const LastHashKey = "source.last_hash"

type Service struct {
	db     *storage.DB
	cfg    config.Config
	src    source.Source
	loader *pipeline.LoadService
	state  *inventory.State
	logger *zap.Logger
}

func NewService(db *storage.DB, cfg config.Config, src source.Source, state *inventory.State, layout pipeline.Layout, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		cfg:    cfg,
		src:    src,
		loader: pipeline.NewLoadService(src, state, db, layout, logger),
		state:  state,
		logger: logger,
	}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.SyncIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	s.logger.Info("watcher started", zap.String("source", s.src.Name()), zap.Duration("interval", interval))

	for {
		if _, err := s.RunCycle(ctx); err != nil {
			s.logger.Error("watcher cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("watcher stopped")
			return nil
		case <-time.After(interval):
		}
	}
}

// RunCycle fetches the source once and ingests it when its content changed
// since the last successful cycle. It reports whether an ingestion ran.
func (s *Service) RunCycle(ctx context.Context) (bool, error) {
	content, err := s.src.Fetch(ctx)
	if err != nil {
		return false, err
	}

	hash := pipeline.ContentHash(content)
	last, err := s.db.GetMetadata(LastHashKey)
	if err != nil {
		return false, err
	}
	if last != nil && *last == hash {
		s.logger.Debug("source unchanged", zap.String("hash", hash))
		return false, nil
	}

	result, err := s.loader.LoadBytes(s.src.Name(), content)
	if errors.Is(err, inventory.ErrIngestInProgress) {
		s.logger.Info("ingestion already running, skipping cycle")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.db.SetMetadata(LastHashKey, hash); err != nil {
		return true, err
	}

	if s.cfg.SyncAutoExport {
		if err := pipeline.ExportInventoryToXLSX(s.state.Snapshot(), s.cfg.ExportPath()); err != nil {
			return true, fmt.Errorf("auto export: %w", err)
		}
		s.logger.Info("inventory exported", zap.String("path", s.cfg.ExportPath()))
	}

	s.logger.Info("watcher cycle done", zap.String("run_id", result.RunID), zap.String("hash", hash))
	return true, nil
}
