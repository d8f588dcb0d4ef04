package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ligrec/internal/analysis"
	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

func TestGeneWriter(t *testing.T) {
	var sb strings.Builder
	gw := NewGeneWriter(&sb)

	require.NoError(t, gw.WriteHeader())

	gene := &biodb.Gene{
		EntrezID: "1950", Symbol: "EGF",
		Variants: []*biodb.Variant{{RefseqID: "NM_001963"}},
	}
	ginput := &input.GeneInput{
		EntrezID:                 "1950",
		RepresentativeRefseq:     gene.Variants[0],
		RepresentativeExpression: 95.5,
		NormalizedExpression:     1234.5678,
	}
	require.NoError(t, gw.Write(gene, ginput, "cancer"))
	require.NoError(t, gw.Flush())

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "#entrez_id\tsymbol\tcategory\trepresentative_refseq\trepresentative_expression\tnormalized_expression", lines[0])
	assert.Equal(t, "1950\tEGF\tcancer\tNM_001963\t95.5000\t1234.5678", lines[1])
}

func TestGeneWriter_UncategorizedGene(t *testing.T) {
	var sb strings.Builder
	gw := NewGeneWriter(&sb)

	gene := &biodb.Gene{EntrezID: "42", Symbol: "MISC"}
	require.NoError(t, gw.Write(gene, &input.GeneInput{EntrezID: "42"}, ""))
	require.NoError(t, gw.Flush())

	assert.Equal(t, "42\tMISC\t-\t-\t0.0000\t0.0000\n", sb.String())
}

func testResult(withMetrics bool) *analysis.InteractionResult {
	r := &analysis.InteractionResult{
		Interaction: &biodb.Interaction{
			ID: "k1", Type: "KEGG",
			LigandSymbol: "EGF", ReceptorSymbol: "EGFR",
		},
		LigandCancer:   &input.GeneInput{EntrezID: "1950"},
		ReceptorCancer: &input.GeneInput{EntrezID: "1956"},
		ReceptorStroma: &input.GeneInput{EntrezID: "1956"},
	}
	if withMetrics {
		r.LigandStroma = &input.GeneInput{EntrezID: "1950"}
		r.Metrics = &analysis.InteractionMetrics{
			AverageCancerToStroma:   83.666,
			LigandRatioCancer:       0.6,
			LigandRatioStroma:       0.4,
			ReceptorRatioCancer:     0.3,
			ReceptorRatioStroma:     0.7,
			LigandShareSameReceptor: 0.5,
		}
	}
	return r
}

func TestInteractionWriter(t *testing.T) {
	var sb strings.Builder
	iw := NewInteractionWriter(&sb)

	require.NoError(t, iw.WriteHeader())
	require.NoError(t, iw.Write(testResult(true)))
	require.NoError(t, iw.Flush())

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#interaction_id\ttype\t"))
	assert.Equal(t,
		"k1\tKEGG\tEGF\tEGFR\t1950\t1950\t1956\t1956\t83.6660\t0.0000\t0.6000\t0.4000\t0.3000\t0.7000\t0.5000",
		lines[1])
}

func TestInteractionWriter_SkippedMetrics(t *testing.T) {
	var sb strings.Builder
	iw := NewInteractionWriter(&sb)

	require.NoError(t, iw.Write(testResult(false)))
	require.NoError(t, iw.Flush())

	// Missing stroma ligand selection: "-" for the gene and all metrics.
	assert.Equal(t,
		"k1\tKEGG\tEGF\tEGFR\t1950\t-\t1956\t1956\t-\t-\t-\t-\t-\t-\t-\n",
		sb.String())
}
