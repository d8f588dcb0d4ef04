// Package input holds the per-sample expression stores consumed by the
// scoring pipeline.
package input

import (
	"github.com/inodb/ligrec/internal/biodb"
)

// RefseqInput holds the per-sample expression of one transcript.
// TrueExpression is the bias-corrected read-count estimate produced
// upstream; the scoring pipeline treats it as read-only.
type RefseqInput struct {
	RefseqID       string
	RawExpression  float64 // raw read-count estimate before correction
	TrueExpression float64 // bias-corrected expression
}

// GeneInput holds the per-sample expression record of one gene.
// RepresentativeRefseq and RepresentativeExpression are written once by the
// representative-transcript selection, NormalizedExpression once by the
// normalizer; all three are read-only afterwards.
type GeneInput struct {
	EntrezID                 string
	RepresentativeRefseq     *biodb.Variant
	RepresentativeExpression float64
	NormalizedExpression     float64
}

// Input is the per-sample expression store: one GeneInput per known gene and
// one RefseqInput per known transcript variant.
type Input struct {
	GeneInputs   map[string]*GeneInput   // keyed by Entrez id
	RefseqInputs map[string]*RefseqInput // keyed by RefSeq id
}

// NewInput creates an input store pre-populated with zero-valued entries for
// every gene and transcript variant in the reference database.
func NewInput(db *biodb.BioDB) *Input {
	in := &Input{
		GeneInputs:   make(map[string]*GeneInput, len(db.Genes)),
		RefseqInputs: make(map[string]*RefseqInput),
	}
	for id, g := range db.Genes {
		in.GeneInputs[id] = &GeneInput{EntrezID: id}
		for _, v := range g.Variants {
			in.RefseqInputs[v.RefseqID] = &RefseqInput{RefseqID: v.RefseqID}
		}
	}
	return in
}
