package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

func newGene(entrezID, symbol string, refseqIDs ...string) *biodb.Gene {
	g := &biodb.Gene{EntrezID: entrezID, Symbol: symbol}
	for _, id := range refseqIDs {
		g.Variants = append(g.Variants, &biodb.Variant{RefseqID: id})
	}
	return g
}

func setExpression(in *input.Input, refseqID string, v float64) {
	in.RefseqInputs[refseqID].TrueExpression = v
}

func TestSelectRepresentatives_MaxVariantWins(t *testing.T) {
	db := biodb.New()
	db.AddGene(newGene("1950", "EGF", "NM_001963", "NM_001178130", "NM_001178131"))

	in := input.NewInput(db)
	setExpression(in, "NM_001963", 12.5)
	setExpression(in, "NM_001178130", 40.0)
	setExpression(in, "NM_001178131", 7.0)

	a := NewAnalyzer(db, in)
	require.NoError(t, a.SelectRepresentatives())

	ginput := in.GeneInputs["1950"]
	assert.Equal(t, "NM_001178130", ginput.RepresentativeRefseq.RefseqID)
	assert.Equal(t, 40.0, ginput.RepresentativeExpression)
}

func TestSelectRepresentatives_TieKeepsLowestIndex(t *testing.T) {
	db := biodb.New()
	db.AddGene(newGene("7039", "TGFA", "NM_003236", "NM_001099691"))

	in := input.NewInput(db)
	setExpression(in, "NM_003236", 15.0)
	setExpression(in, "NM_001099691", 15.0)

	a := NewAnalyzer(db, in)
	require.NoError(t, a.SelectRepresentatives())

	// Strict < comparison: the first variant wins the tie.
	assert.Equal(t, "NM_003236", in.GeneInputs["7039"].RepresentativeRefseq.RefseqID)
}

func TestSelectRepresentatives_SingleVariant(t *testing.T) {
	db := biodb.New()
	db.AddGene(newGene("3082", "HGF", "NM_000601"))

	in := input.NewInput(db)
	setExpression(in, "NM_000601", 3.25)

	a := NewAnalyzer(db, in)
	require.NoError(t, a.SelectRepresentatives())

	ginput := in.GeneInputs["3082"]
	assert.Equal(t, "NM_000601", ginput.RepresentativeRefseq.RefseqID)
	assert.Equal(t, 3.25, ginput.RepresentativeExpression)
}

func TestSelectRepresentatives_NoVariantsFails(t *testing.T) {
	db := biodb.New()
	db.AddGene(&biodb.Gene{EntrezID: "9999", Symbol: "BROKEN"})

	in := input.NewInput(db)

	a := NewAnalyzer(db, in)
	err := a.SelectRepresentatives()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript variants")
}

func TestSelectRepresentatives_MissingRefseqInputFails(t *testing.T) {
	db := biodb.New()
	db.AddGene(newGene("1950", "EGF", "NM_001963"))

	in := input.NewInput(db)
	delete(in.RefseqInputs, "NM_001963")

	a := NewAnalyzer(db, in)
	err := a.SelectRepresentatives()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NM_001963")
}
