package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ligrec/internal/biodb"
)

// manyInteractionsFixture builds n interactions spread over a handful of
// receptor symbols so the sharing sums cross-reference several results.
func manyInteractionsFixture(t *testing.T, n int) (*Analyzer, []*InteractionResult) {
	t.Helper()
	norm := make(map[string]float64)
	for i := range n {
		norm[fmt.Sprintf("lc%d", i)] = float64(10 + i)
		norm[fmt.Sprintf("ls%d", i)] = float64(5 + 2*i)
		norm[fmt.Sprintf("rc%d", i)] = float64(1 + i)
		norm[fmt.Sprintf("rs%d", i)] = float64(3 + i)
	}
	db, in := interactionFixture(t, norm)
	for i := range n {
		db.Interactions = append(db.Interactions, &biodb.Interaction{
			ID:                  fmt.Sprintf("i%d", i),
			ReceptorSymbol:      fmt.Sprintf("R%d", i%5),
			ValidCancerToStroma: i%2 == 0,
			ValidStromaToCancer: i%3 == 0,
			LigandCancer:        []*biodb.Gene{db.Gene(fmt.Sprintf("lc%d", i))},
			LigandStroma:        []*biodb.Gene{db.Gene(fmt.Sprintf("ls%d", i))},
			ReceptorCancer:      []*biodb.Gene{db.Gene(fmt.Sprintf("rc%d", i))},
			ReceptorStroma:      []*biodb.Gene{db.Gene(fmt.Sprintf("rs%d", i))},
		})
	}

	a := NewAnalyzer(db, in)
	results, err := a.SelectInteractionGenes()
	require.NoError(t, err)
	return a, results
}

func TestComputeMetrics_ParallelMatchesSerial(t *testing.T) {
	serial, serialResults := manyInteractionsFixture(t, 60)
	serial.ComputeMetrics(serialResults)

	parallel, parallelResults := manyInteractionsFixture(t, 60)
	parallel.SetWorkers(8)
	parallel.ComputeMetrics(parallelResults)

	require.Len(t, parallelResults, len(serialResults))
	for i := range serialResults {
		require.NotNil(t, parallelResults[i].Metrics, "result %d", i)
		assert.Equal(t, *serialResults[i].Metrics, *parallelResults[i].Metrics, "result %d", i)
	}
}

func TestComputeMetrics_ParallelSkipsIncomplete(t *testing.T) {
	a, results := manyInteractionsFixture(t, 20)
	results[7].ReceptorStroma = nil
	a.SetWorkers(4)
	a.ComputeMetrics(results)

	assert.Nil(t, results[7].Metrics)
	for i, r := range results {
		if i == 7 {
			continue
		}
		assert.NotNil(t, r.Metrics, "result %d", i)
	}
}
