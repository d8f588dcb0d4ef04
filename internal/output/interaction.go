package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/ligrec/internal/analysis"
	"github.com/inodb/ligrec/internal/input"
)

// InteractionWriter writes the per-interaction scoring report in
// tab-delimited format. Interactions whose metrics were skipped appear with
// "-" in every metric column.
type InteractionWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewInteractionWriter creates a new interaction report writer.
func NewInteractionWriter(w io.Writer) *InteractionWriter {
	return &InteractionWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#interaction_id",
			"type",
			"ligand_symbol",
			"receptor_symbol",
			"ligand_cancer_gene",
			"ligand_stroma_gene",
			"receptor_cancer_gene",
			"receptor_stroma_gene",
			"average_cancer2stroma",
			"average_stroma2cancer",
			"ligand_ratio_cancer",
			"ligand_ratio_stroma",
			"receptor_ratio_cancer",
			"receptor_ratio_stroma",
			"ligand_share_same_receptor",
		},
	}
}

// WriteHeader writes the header line.
func (iw *InteractionWriter) WriteHeader() error {
	_, err := iw.w.WriteString(strings.Join(iw.columns, "\t") + "\n")
	return err
}

// Write writes one interaction row.
func (iw *InteractionWriter) Write(r *analysis.InteractionResult) error {
	inter := r.Interaction

	values := []string{
		inter.ID,
		inter.Type,
		inter.LigandSymbol,
		inter.ReceptorSymbol,
		selectedID(r.LigandCancer),
		selectedID(r.LigandStroma),
		selectedID(r.ReceptorCancer),
		selectedID(r.ReceptorStroma),
	}

	if m := r.Metrics; m != nil {
		values = append(values,
			formatExpression(m.AverageCancerToStroma),
			formatExpression(m.AverageStromaToCancer),
			formatExpression(m.LigandRatioCancer),
			formatExpression(m.LigandRatioStroma),
			formatExpression(m.ReceptorRatioCancer),
			formatExpression(m.ReceptorRatioStroma),
			formatExpression(m.LigandShareSameReceptor),
		)
	} else {
		for range 7 {
			values = append(values, "-")
		}
	}

	_, err := iw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (iw *InteractionWriter) Flush() error {
	return iw.w.Flush()
}

func selectedID(g *input.GeneInput) string {
	if g == nil {
		return "-"
	}
	return g.EntrezID
}
