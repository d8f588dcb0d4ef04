package analysis

import (
	"errors"
	"fmt"
	"sort"
)

// NormalizationTarget is the fixed total the middle-90% expression sum of a
// category is rescaled to.
const NormalizationTarget = 300000.0

// ErrZeroExpression is returned when both the trimmed and the fallback
// expression sums of a category are zero, leaving the scale factor
// undefined. The error is fatal for the run rather than being coerced to
// zero expression values.
var ErrZeroExpression = errors.New("category expression sum is zero")

// Normalize rescales the representative expression of every categorized
// gene so that the sum of the middle 90% of values in its category equals
// NormalizationTarget. The cancer and stromal categories are normalized
// independently. Genes outside both categories keep a zero normalized
// expression.
func (a *Analyzer) Normalize() error {
	if err := a.normalizeCategory("cancer", a.db.CancerEntrezIDs); err != nil {
		return err
	}
	return a.normalizeCategory("stromal", a.db.StromalEntrezIDs)
}

// normalizeCategory computes the category scale factor and writes the
// normalized expression for every gene in the category.
//
// The trimmed sum is index-based: values are sorted ascending and summed
// over the rank range (0.05*n, floor(0.95*n)], iterating downward from the
// upper index. The boundary arithmetic, including the float comparison
// against 0.05*n, must stay exactly as written for reproducibility. A zero
// trimmed sum falls back to the untrimmed total.
func (a *Analyzer) normalizeCategory(name string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	exprs := make([]float64, len(ids))
	for i, id := range ids {
		ginput := a.in.GeneInputs[id]
		if ginput == nil {
			return fmt.Errorf("normalize %s: no gene input for entrez id %s", name, id)
		}
		exprs[i] = ginput.RepresentativeExpression
	}
	sort.Float64s(exprs)

	n := len(exprs)
	sum := 0.0
	for i := int(float64(n) * 0.95); float64(i) > float64(n)*0.05; i-- {
		sum += exprs[i]
	}
	if sum == 0 {
		for _, v := range exprs {
			sum += v
		}
	}
	if sum == 0 {
		return fmt.Errorf("normalize %s: %w", name, ErrZeroExpression)
	}

	for _, id := range ids {
		ginput := a.in.GeneInputs[id]
		ginput.NormalizedExpression = ginput.RepresentativeExpression * NormalizationTarget / sum
	}
	return nil
}
