package analysis

import (
	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

// InteractionResult holds the per-sample scoring output for one interaction.
// Results are kept separate from the reference Interaction entities so the
// reference database stays immutable across runs.
//
// The four role selections point at the gene with the highest normalized
// expression in that role's candidate set; nil means the set had no member.
// Metrics is nil when any role selection is missing (the metrics formulas
// need all four).
type InteractionResult struct {
	Interaction *biodb.Interaction

	LigandCancer   *input.GeneInput
	LigandStroma   *input.GeneInput
	ReceptorCancer *input.GeneInput
	ReceptorStroma *input.GeneInput

	Metrics *InteractionMetrics
}

// InteractionMetrics holds the derived comparative statistics for one
// interaction. Fields whose guard condition was false keep their zero value:
// the directional averages and ligand ratios require the matching validity
// flag, LigandShareSameReceptor a positive same-receptor ligand sum, and the
// receptor ratios a positive receptor expression sum.
type InteractionMetrics struct {
	AverageCancerToStroma float64 // sqrt(lig_cancer * rec_stroma), cancer→stroma
	AverageStromaToCancer float64 // sqrt(lig_stroma * rec_cancer), stroma→cancer

	LigandRatioCancer float64
	LigandRatioStroma float64

	ReceptorRatioCancer float64
	ReceptorRatioStroma float64

	// LigandShareSameReceptor is this interaction's ligand expression as a
	// fraction of the total ligand expression across every interaction
	// targeting the same receptor symbol.
	LigandShareSameReceptor float64
}

// Complete reports whether all four role selections are set.
func (r *InteractionResult) Complete() bool {
	return r.LigandCancer != nil && r.LigandStroma != nil &&
		r.ReceptorCancer != nil && r.ReceptorStroma != nil
}
