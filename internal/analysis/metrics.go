package analysis

import (
	"math"

	"go.uber.org/zap"
)

// ComputeMetrics derives the comparative statistics for every interaction
// result. Role selection must already be complete for the whole collection:
// the receptor-sharing sums read every result's ligand selections.
//
// Interactions with a missing role selection are skipped and flagged with
// nil Metrics; they never abort the run. Their selected ligand roles still
// contribute to the receptor-sharing sums of other interactions.
func (a *Analyzer) ComputeMetrics(results []*InteractionResult) {
	if a.workers > 1 {
		a.forEachParallel(results, a.computeMetrics)
		a.logSkipped(results)
		return
	}
	for _, r := range results {
		a.computeMetrics(results, r)
	}
	a.logSkipped(results)
}

// computeMetrics scores a single interaction. It only reads from other
// results, so results may be scored concurrently.
func (a *Analyzer) computeMetrics(results []*InteractionResult, r *InteractionResult) {
	if !r.Complete() {
		return
	}

	expLigCancer := r.LigandCancer.NormalizedExpression
	expRecCancer := r.ReceptorCancer.NormalizedExpression
	expLigStroma := r.LigandStroma.NormalizedExpression
	expRecStroma := r.ReceptorStroma.NormalizedExpression

	// Total ligand expression over every interaction targeting the same
	// receptor symbol, both compartments. Quadratic over the interaction
	// database, which stays small enough for this to be a non-issue.
	sharingSum := 0.0
	for _, other := range results {
		if r.Interaction.ReceptorSymbol != other.Interaction.ReceptorSymbol {
			continue
		}
		if other.LigandCancer != nil {
			sharingSum += other.LigandCancer.NormalizedExpression
		}
		if other.LigandStroma != nil {
			sharingSum += other.LigandStroma.NormalizedExpression
		}
	}

	m := &InteractionMetrics{}

	if r.Interaction.ValidCancerToStroma {
		m.AverageCancerToStroma = math.Sqrt(expLigCancer * expRecStroma)
		m.LigandRatioCancer = expLigCancer / (expLigCancer + expLigStroma)
		m.LigandRatioStroma = 1.0 - m.LigandRatioCancer
	}
	if r.Interaction.ValidStromaToCancer {
		m.AverageStromaToCancer = math.Sqrt(expLigStroma * expRecCancer)
		// Recomputed on purpose when both directions are valid; the values
		// are identical.
		m.LigandRatioCancer = expLigCancer / (expLigCancer + expLigStroma)
		m.LigandRatioStroma = 1.0 - m.LigandRatioCancer
	}

	if sharingSum > 0 {
		m.LigandShareSameReceptor = (expLigCancer + expLigStroma) / sharingSum
	}

	if expRecCancer+expRecStroma > 0 {
		m.ReceptorRatioStroma = expRecStroma / (expRecCancer + expRecStroma)
		m.ReceptorRatioCancer = 1.0 - m.ReceptorRatioStroma
	}

	r.Metrics = m
}

func (a *Analyzer) logSkipped(results []*InteractionResult) {
	for _, r := range results {
		if r.Complete() {
			continue
		}
		a.logger.Warn("interaction skipped: missing role selection",
			zap.String("interaction", r.Interaction.ID),
			zap.String("receptor", r.Interaction.ReceptorSymbol),
			zap.Bool("ligand_cancer", r.LigandCancer != nil),
			zap.Bool("ligand_stroma", r.LigandStroma != nil),
			zap.Bool("receptor_cancer", r.ReceptorCancer != nil),
			zap.Bool("receptor_stroma", r.ReceptorStroma != nil))
	}
}
