// Package analysis implements the cancer-stroma ligand-receptor scoring
// pipeline: representative-transcript selection, trimmed-sum expression
// normalization, per-role gene selection and interaction metrics.
package analysis

import (
	"go.uber.org/zap"

	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

// Analyzer runs the scoring pipeline for a single sample. The stages run
// strictly in order; each stage's preconditions are the previous stage's
// postconditions.
type Analyzer struct {
	db      *biodb.BioDB
	in      *input.Input
	workers int
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer over the given reference database and
// per-sample input store.
func NewAnalyzer(db *biodb.BioDB, in *input.Input) *Analyzer {
	return &Analyzer{
		db:     db,
		in:     in,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and progress messages.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
}

// SetWorkers sets the worker count for the metrics pass. Zero or one means
// serial computation.
func (a *Analyzer) SetWorkers(n int) {
	a.workers = n
}

// Run executes the full pipeline and returns one result per interaction, in
// reference-database order. Selector and normalizer failures are fatal;
// interactions whose role selections are incomplete are scored with nil
// Metrics and logged.
func (a *Analyzer) Run() ([]*InteractionResult, error) {
	if err := a.SelectRepresentatives(); err != nil {
		return nil, err
	}

	a.logger.Info("normalizing expression",
		zap.Int("cancer_genes", len(a.db.CancerEntrezIDs)),
		zap.Int("stromal_genes", len(a.db.StromalEntrezIDs)))
	if err := a.Normalize(); err != nil {
		return nil, err
	}

	a.logger.Info("scoring interactions", zap.Int("interactions", len(a.db.Interactions)))
	results, err := a.SelectInteractionGenes()
	if err != nil {
		return nil, err
	}

	// Role selection must be complete for the whole collection before any
	// metrics computation starts: the receptor-sharing sums read every
	// interaction's ligand selections.
	a.ComputeMetrics(results)

	return results, nil
}
