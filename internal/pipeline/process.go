package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invdash/internal"
	"invdash/internal/inventory"
	"invdash/internal/source"
	"invdash/internal/storage"
	"invdash/internal/workbook"
)

type LoadService struct {
	src    source.Source
	state  *inventory.State
	db     *storage.DB
	layout Layout
	logger *zap.Logger
}

// NewLoadService wires a source to the state holder. db may be nil, in which
// case nothing is persisted.
func NewLoadService(src source.Source, state *inventory.State, db *storage.DB, layout Layout, logger *zap.Logger) *LoadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoadService{src: src, state: state, db: db, layout: layout, logger: logger}
}

type LoadResult struct {
	RunID         string
	Source        string
	ContentHash   string
	Generation    int64
	Notebooks     int
	Handhelds     int
	Printers      int
	MissingSheets []string
	Duration      time.Duration
}

const ingestLockTTL = 5 * time.Minute

// Load fetches the source and replaces the inventory with its contents. On any
// failure the current inventory is left as it was.
func (s *LoadService) Load(ctx context.Context) (LoadResult, error) {
	runID, release, err := s.begin()
	if err != nil {
		return LoadResult{}, err
	}
	defer release()

	content, err := s.src.Fetch(ctx)
	if err != nil {
		s.logger.Error("source fetch failed", zap.String("source", s.src.Name()), zap.Error(err))
		return LoadResult{}, err
	}
	return s.ingest(runID, s.src.Name(), content)
}

// LoadBytes ingests content that was already fetched by the caller.
func (s *LoadService) LoadBytes(name string, content []byte) (LoadResult, error) {
	runID, release, err := s.begin()
	if err != nil {
		return LoadResult{}, err
	}
	defer release()
	return s.ingest(runID, name, content)
}

func (s *LoadService) begin() (string, func(), error) {
	done, err := s.state.BeginIngest()
	if err != nil {
		return "", nil, err
	}
	runID := uuid.NewString()
	if s.db == nil {
		return runID, done, nil
	}

	if err := s.db.AcquireIngestLock(runID, ingestLockTTL); err != nil {
		done()
		if errors.Is(err, storage.ErrLocked) {
			return "", nil, fmt.Errorf("%w: %w", inventory.ErrIngestInProgress, err)
		}
		return "", nil, fmt.Errorf("lock session store: %w", err)
	}
	return runID, func() {
		if err := s.db.ReleaseIngestLock(runID); err != nil {
			s.logger.Warn("release ingest lock failed", zap.String("run_id", runID), zap.Error(err))
		}
		done()
	}, nil
}

func (s *LoadService) ingest(runID, name string, content []byte) (LoadResult, error) {
	start := time.Now()

	wb, err := workbook.Open(content)
	if err != nil {
		return LoadResult{}, err
	}
	defer wb.Close()
	s.logger.Debug("workbook opened", zap.String("source", name), zap.Strings("sheets", wb.SheetNames()))

	inv, summary := Ingest(wb, s.layout)
	for sheet, sheetErr := range summary.Unreadable {
		s.logger.Warn("sheet unreadable", zap.String("sheet", sheet), zap.Error(sheetErr))
	}
	if len(summary.MissingSheets) > 0 {
		s.logger.Info("sheets not present", zap.Strings("sheets", summary.MissingSheets))
	}

	result := LoadResult{
		RunID:         runID,
		Source:        name,
		ContentHash:   ContentHash(content),
		Notebooks:     len(inv.Notebooks),
		Handhelds:     len(inv.Handhelds),
		Printers:      len(inv.Printers),
		MissingSheets: summary.MissingSheets,
		Duration:      time.Since(start),
	}

	if s.db != nil {
		gen, err := s.db.RecordIngest(inv, internal.RunRecord{
			ID:            result.RunID,
			Source:        result.Source,
			ContentHash:   result.ContentHash,
			Notebooks:     result.Notebooks,
			Handhelds:     result.Handhelds,
			Printers:      result.Printers,
			MissingSheets: storage.MissingSheetsJSON(result.MissingSheets),
			DurationMs:    result.Duration.Milliseconds(),
		})
		if err != nil {
			return LoadResult{}, fmt.Errorf("store inventory: %w", err)
		}
		result.Generation = gen
	}
	s.state.Replace(inv)

	s.logger.Info("inventory loaded",
		zap.String("run_id", result.RunID),
		zap.String("source", name),
		zap.Int("notebooks", result.Notebooks),
		zap.Int("handhelds", result.Handhelds),
		zap.Int("printers", result.Printers),
		zap.Duration("took", result.Duration),
	)
	return result, nil
}

func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
