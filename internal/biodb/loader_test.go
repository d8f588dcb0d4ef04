package biodb

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeneTSV = `# entrez_id	symbol	refseq_id	length
1950	EGF	NM_001963	4774
1950	EGF	NM_001178130	4781
7039	TGFA	NM_003236	4545
1956	EGFR	NM_005228	9905
`

const testInteractionTSV = `# id	type	ligand	receptor	lc	ls	rc	rs	c2s	s2c
k1	KEGG	EGF	EGFR	1950,7039	1950	1956	1956	1	0
k2	HPRD	TGFA	EGFR	7039	7039	1956	-	0	1
`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeTestLoaderFiles(t *testing.T) *Loader {
	t.Helper()
	dir := t.TempDir()
	return NewLoader(
		writeTestFile(t, dir, "genes.tsv", testGeneTSV),
		writeTestFile(t, dir, "interactions.tsv", testInteractionTSV),
		writeTestFile(t, dir, "cancer.txt", "1950\n7039\n1956\n"),
		writeTestFile(t, dir, "stromal.txt", "# stromal genes\n1950\n1956\n"),
		writeTestFile(t, dir, "stromal_refseq.txt", "NM_001963\nNM_005228\n"),
	)
}

func TestLoaderLoad(t *testing.T) {
	db := New()
	require.NoError(t, writeTestLoaderFiles(t).Load(db))

	assert.Equal(t, 3, db.GeneCount())

	egf := db.Gene("1950")
	require.NotNil(t, egf)
	assert.Equal(t, "EGF", egf.Symbol)
	require.Len(t, egf.Variants, 2)
	assert.Equal(t, "NM_001963", egf.Variants[0].RefseqID)
	assert.Equal(t, 4774, egf.Variants[0].Length)

	assert.Equal(t, []string{"1950", "7039", "1956"}, db.CancerEntrezIDs)
	assert.Equal(t, []string{"1950", "1956"}, db.StromalEntrezIDs)
	assert.Equal(t, []string{"NM_001963", "NM_005228"}, db.StromalRefseqIDs)

	require.Len(t, db.Interactions, 2)
	k1 := db.Interactions[0]
	assert.Equal(t, "KEGG", k1.Type)
	assert.Equal(t, "EGFR", k1.ReceptorSymbol)
	require.Len(t, k1.LigandCancer, 2)
	assert.Equal(t, "7039", k1.LigandCancer[1].EntrezID)
	assert.True(t, k1.ValidCancerToStroma)
	assert.False(t, k1.ValidStromaToCancer)

	// "-" means an empty role set.
	k2 := db.Interactions[1]
	assert.Empty(t, k2.ReceptorStroma)
	assert.True(t, k2.ValidStromaToCancer)
}

func TestLoaderGzippedGeneFile(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(testGeneTSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	genePath := filepath.Join(dir, "genes.tsv.gz")
	require.NoError(t, os.WriteFile(genePath, buf.Bytes(), 0644))

	loader := NewLoader(
		genePath,
		writeTestFile(t, dir, "interactions.tsv", testInteractionTSV),
		writeTestFile(t, dir, "cancer.txt", "1950\n"),
		writeTestFile(t, dir, "stromal.txt", "1956\n"),
		"",
	)

	db := New()
	require.NoError(t, loader.Load(db))
	assert.Equal(t, 3, db.GeneCount())
	assert.Nil(t, db.StromalRefseqIDs)
}

func TestLoaderUnknownInteractionGene(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(
		writeTestFile(t, dir, "genes.tsv", testGeneTSV),
		writeTestFile(t, dir, "interactions.tsv",
			"k1\tKEGG\tEGF\tEGFR\t404\t1950\t1956\t1956\t1\t0\n"),
		writeTestFile(t, dir, "cancer.txt", "1950\n"),
		writeTestFile(t, dir, "stromal.txt", "1956\n"),
		"",
	)

	err := loader.Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entrez id 404")
}

func TestLoaderBadValidityFlag(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(
		writeTestFile(t, dir, "genes.tsv", testGeneTSV),
		writeTestFile(t, dir, "interactions.tsv",
			"k1\tKEGG\tEGF\tEGFR\t1950\t1950\t1956\t1956\tmaybe\t0\n"),
		writeTestFile(t, dir, "cancer.txt", "1950\n"),
		writeTestFile(t, dir, "stromal.txt", "1956\n"),
		"",
	)

	err := loader.Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validity flag")
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader("/nonexistent/genes.tsv", "", "", "", "")
	err := loader.Load(New())
	require.Error(t, err)
}

func TestLoaderTooFewColumns(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(
		writeTestFile(t, dir, "genes.tsv", "1950\tEGF\n"),
		writeTestFile(t, dir, "interactions.tsv", testInteractionTSV),
		writeTestFile(t, dir, "cancer.txt", "1950\n"),
		writeTestFile(t, dir, "stromal.txt", "1956\n"),
		"",
	)

	err := loader.Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}
