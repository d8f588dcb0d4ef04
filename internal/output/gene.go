// Package output provides tab-delimited report writers.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

// GeneWriter writes the per-gene expression report in tab-delimited format.
type GeneWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewGeneWriter creates a new gene report writer.
func NewGeneWriter(w io.Writer) *GeneWriter {
	return &GeneWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#entrez_id",
			"symbol",
			"category",
			"representative_refseq",
			"representative_expression",
			"normalized_expression",
		},
	}
}

// WriteHeader writes the header line.
func (gw *GeneWriter) WriteHeader() error {
	_, err := gw.w.WriteString(strings.Join(gw.columns, "\t") + "\n")
	return err
}

// Write writes one gene row. category names the normalization category the
// gene belongs to ("cancer", "stromal" or "-").
func (gw *GeneWriter) Write(gene *biodb.Gene, ginput *input.GeneInput, category string) error {
	refseq := "-"
	if ginput.RepresentativeRefseq != nil {
		refseq = ginput.RepresentativeRefseq.RefseqID
	}
	if category == "" {
		category = "-"
	}

	values := []string{
		gene.EntrezID,
		gene.Symbol,
		category,
		refseq,
		formatExpression(ginput.RepresentativeExpression),
		formatExpression(ginput.NormalizedExpression),
	}

	_, err := gw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (gw *GeneWriter) Flush() error {
	return gw.w.Flush()
}

// formatExpression formats an expression value with four decimals.
func formatExpression(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
