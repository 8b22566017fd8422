package predict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// Service produces predictions and records them in the history log.
//
// The seed is stored on the record but never influences the draw: mine and
// safe positions are two independent uniform samples.
type Service struct {
	Sampler ports.Sampler
	History ports.HistoryStore
	IDs     ports.IDGenerator
	Clock   ports.Clock
	Logger  ports.Logger
}

// Request is one prediction to produce.
type Request struct {
	ChatID    int64
	Seed      string
	MineCount domain.MineCount
}

// Predict draws safe and mine positions for req.MineCount, appends the
// resulting record to the history log and returns it. A mine count outside
// [MinMines, MaxMines] is a caller bug and fails with
// domain.ErrMineCountOutOfRange.
func (s *Service) Predict(ctx context.Context, req Request) (domain.PredictionRecord, error) {
	mineCount := req.MineCount
	if s.Sampler == nil || s.History == nil {
		return domain.PredictionRecord{}, errors.New("predict.Service dependencies not satisfied")
	}
	if !mineCount.Valid() {
		return domain.PredictionRecord{}, fmt.Errorf("%w: %d", domain.ErrMineCountOutOfRange, mineCount)
	}
	if err := ctx.Err(); err != nil {
		return domain.PredictionRecord{}, err
	}

	safe, err := s.Sampler.Sample(domain.SafeCellQuota(mineCount), domain.CellCount)
	if err != nil {
		return domain.PredictionRecord{}, fmt.Errorf("sample safe cells: %w", err)
	}
	mines, err := s.Sampler.Sample(int(mineCount), domain.CellCount)
	if err != nil {
		return domain.PredictionRecord{}, fmt.Errorf("sample mines: %w", err)
	}

	record := domain.PredictionRecord{
		ID:            s.newID(),
		CreatedAt:     s.now(),
		ChatID:        req.ChatID,
		Seed:          strings.TrimSpace(req.Seed),
		MineCount:     mineCount,
		MinePositions: mines,
		SafePositions: safe,
	}

	if err := s.History.Append(record); err != nil {
		return domain.PredictionRecord{}, fmt.Errorf("append history: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Debug("prediction recorded", map[string]interface{}{
			"id":         record.ID,
			"mine_count": int(mineCount),
			"safe_cells": len(safe),
		})
	}
	return record, nil
}

func (s *Service) newID() string {
	if s.IDs == nil {
		return ""
	}
	return s.IDs.NewID()
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}
