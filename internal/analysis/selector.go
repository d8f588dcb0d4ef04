package analysis

import (
	"fmt"
)

// SelectRepresentatives picks, for every gene in the reference database, the
// transcript variant with the highest bias-corrected expression as the
// gene's representative. Ties keep the lowest-indexed variant: the scan uses
// a strict < comparison, which downstream reproducibility depends on.
//
// A gene without variants or a variant without an expression record is a
// configuration-integrity failure and aborts the run.
func (a *Analyzer) SelectRepresentatives() error {
	for entrezID, gene := range a.db.Genes {
		if len(gene.Variants) == 0 {
			return fmt.Errorf("select representative: gene %s has no transcript variants", entrezID)
		}

		ginput := a.in.GeneInputs[entrezID]
		if ginput == nil {
			return fmt.Errorf("select representative: no gene input for entrez id %s", entrezID)
		}

		maximum := 0
		best, err := a.trueExpression(gene.Variants[0].RefseqID)
		if err != nil {
			return fmt.Errorf("select representative for gene %s: %w", entrezID, err)
		}
		for i := 1; i < len(gene.Variants); i++ {
			expr, err := a.trueExpression(gene.Variants[i].RefseqID)
			if err != nil {
				return fmt.Errorf("select representative for gene %s: %w", entrezID, err)
			}
			if best < expr {
				maximum = i
				best = expr
			}
		}

		ginput.RepresentativeRefseq = gene.Variants[maximum]
		ginput.RepresentativeExpression = best
	}
	return nil
}

func (a *Analyzer) trueExpression(refseqID string) (float64, error) {
	ri := a.in.RefseqInputs[refseqID]
	if ri == nil {
		return 0, fmt.Errorf("no expression record for refseq id %s", refseqID)
	}
	return ri.TrueExpression, nil
}
