package biodb

import (
	"fmt"
	"sort"
)

// BioDB holds the reference database for one analysis run: genes with their
// transcript variants, the cancer/stromal category id lists, and the curated
// ligand-receptor interactions. Reference data is immutable once loaded.
type BioDB struct {
	Genes map[string]*Gene // keyed by Entrez id

	CancerEntrezIDs  []string
	StromalEntrezIDs []string
	StromalRefseqIDs []string

	Interactions []*Interaction
}

// New creates an empty reference database.
func New() *BioDB {
	return &BioDB{
		Genes: make(map[string]*Gene),
	}
}

// AddGene adds a gene to the database.
func (db *BioDB) AddGene(g *Gene) {
	db.Genes[g.EntrezID] = g
}

// Gene returns the gene with the given Entrez id, or nil if not found.
func (db *BioDB) Gene(entrezID string) *Gene {
	return db.Genes[entrezID]
}

// GeneCount returns the number of genes in the database.
func (db *BioDB) GeneCount() int {
	return len(db.Genes)
}

// EntrezIDs returns a sorted list of all known Entrez ids.
func (db *BioDB) EntrezIDs() []string {
	ids := make([]string, 0, len(db.Genes))
	for id := range db.Genes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the configuration invariants the scoring pipeline relies
// on: every category id resolves to a known gene, every gene carries at
// least one transcript variant, and every stromal refseq id resolves to a
// variant of some gene. A violation is a configuration-integrity failure and
// aborts the run.
func (db *BioDB) Validate() error {
	refseqs := make(map[string]bool)
	for _, g := range db.Genes {
		if len(g.Variants) == 0 {
			return fmt.Errorf("gene %s (%s) has no transcript variants", g.EntrezID, g.Symbol)
		}
		for _, v := range g.Variants {
			refseqs[v.RefseqID] = true
		}
	}

	for _, id := range db.CancerEntrezIDs {
		if db.Genes[id] == nil {
			return fmt.Errorf("cancer gene list references unknown entrez id %s", id)
		}
	}
	for _, id := range db.StromalEntrezIDs {
		if db.Genes[id] == nil {
			return fmt.Errorf("stromal gene list references unknown entrez id %s", id)
		}
	}
	for _, id := range db.StromalRefseqIDs {
		if !refseqs[id] {
			return fmt.Errorf("stromal refseq list references unknown refseq id %s", id)
		}
	}

	for _, inter := range db.Interactions {
		for _, set := range [][]*Gene{
			inter.LigandCancer, inter.LigandStroma,
			inter.ReceptorCancer, inter.ReceptorStroma,
		} {
			for _, g := range set {
				if db.Genes[g.EntrezID] == nil {
					return fmt.Errorf("interaction %s references unknown gene %s",
						inter.ID, g.EntrezID)
				}
			}
		}
	}

	return nil
}
