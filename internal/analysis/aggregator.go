package analysis

import (
	"fmt"

	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

// SelectInteractionGenes builds one result per interaction with, for each of
// the four roles, the candidate gene carrying the highest normalized
// expression. The scan uses a strict < comparison, so the first-seen gene
// wins ties. An empty candidate set leaves the selection nil.
//
// A candidate gene without a gene-input record is a configuration-integrity
// failure and aborts the run.
func (a *Analyzer) SelectInteractionGenes() ([]*InteractionResult, error) {
	results := make([]*InteractionResult, 0, len(a.db.Interactions))
	for _, inter := range a.db.Interactions {
		r := &InteractionResult{Interaction: inter}

		var err error
		if r.LigandCancer, err = a.selectRole(inter, inter.LigandCancer); err != nil {
			return nil, err
		}
		if r.LigandStroma, err = a.selectRole(inter, inter.LigandStroma); err != nil {
			return nil, err
		}
		if r.ReceptorCancer, err = a.selectRole(inter, inter.ReceptorCancer); err != nil {
			return nil, err
		}
		if r.ReceptorStroma, err = a.selectRole(inter, inter.ReceptorStroma); err != nil {
			return nil, err
		}

		results = append(results, r)
	}
	return results, nil
}

func (a *Analyzer) selectRole(inter *biodb.Interaction, set []*biodb.Gene) (*input.GeneInput, error) {
	var selected *input.GeneInput
	for _, gene := range set {
		ginput := a.in.GeneInputs[gene.EntrezID]
		if ginput == nil {
			return nil, fmt.Errorf("interaction %s: no gene input for entrez id %s",
				inter.ID, gene.EntrezID)
		}
		if selected == nil || selected.NormalizedExpression < ginput.NormalizedExpression {
			selected = ginput
		}
	}
	return selected, nil
}
