// Package sources combines catalog sources.
package sources

import (
	"context"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

// Source loads catalog entries.
type Source interface {
	Load(ctx context.Context) ([]domain.Entry, error)
}

// Named labels an optional source in logs.
type Named struct {
	Name   string
	Source Source
}

// Merge appends the entries of optional sources to those of a primary one.
// The primary decides success: its error fails the load, while a failing
// extra is logged and left out.
type Merge struct {
	primary Source
	extras  []Named
	logger  logger.Logger
}

// NewMerge creates a merged source
func NewMerge(primary Source, log logger.Logger, extras ...Named) *Merge {
	return &Merge{primary: primary, extras: extras, logger: log}
}

func (m *Merge) Load(ctx context.Context) ([]domain.Entry, error) {
	entries, err := m.primary.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, extra := range m.extras {
		more, err := extra.Source.Load(ctx)
		if err != nil {
			m.logger.Warn("catalog source unavailable, skipping it",
				logger.String("source", extra.Name),
				logger.Error(err))
			continue
		}
		m.logger.Debug("catalog source loaded",
			logger.String("source", extra.Name),
			logger.Int("count", len(more)))
		entries = append(entries, more...)
	}

	return entries, nil
}
