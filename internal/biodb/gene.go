// Package biodb provides the curated ligand-receptor reference database.
package biodb

// Gene represents a reference gene with its known transcript variants.
type Gene struct {
	EntrezID string     // Entrez gene identifier (e.g. 1950)
	Symbol   string     // Gene symbol (e.g. EGF)
	Variants []*Variant // Ordered transcript variants
}

// Variant represents a single transcript variant of a gene.
type Variant struct {
	RefseqID string // RefSeq transcript identifier (e.g. NM_001963)
	Length   int    // Transcript length in bases, 0 if unknown
}

// Variant returns the variant with the given RefSeq id, or nil if the gene
// has no such variant.
func (g *Gene) Variant(refseqID string) *Variant {
	for _, v := range g.Variants {
		if v.RefseqID == refseqID {
			return v
		}
	}
	return nil
}
