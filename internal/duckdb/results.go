package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/ligrec/internal/analysis"
	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/input"
)

// InteractionRow is one row of the interaction_results table.
type InteractionRow struct {
	Sample             string
	InteractionID      string
	Type               string
	LigandSymbol       string
	ReceptorSymbol     string
	LigandCancerGene   string
	LigandStromaGene   string
	ReceptorCancerGene string
	ReceptorStromaGene string
	HasMetrics         bool
	Metrics            analysis.InteractionMetrics
}

// WriteGeneResults batch-inserts gene rows using the Appender API.
func (s *Store) WriteGeneResults(sample string, db *biodb.BioDB, in *input.Input, categoryOf func(string) string) error {
	appender, cleanup, err := s.newAppender("gene_results")
	if err != nil {
		return err
	}
	defer cleanup()

	for _, id := range db.EntrezIDs() {
		gene := db.Genes[id]
		ginput := in.GeneInputs[id]
		refseq := ""
		if ginput.RepresentativeRefseq != nil {
			refseq = ginput.RepresentativeRefseq.RefseqID
		}
		if err := appender.AppendRow(
			sample, gene.EntrezID, gene.Symbol, categoryOf(id),
			refseq, ginput.RepresentativeExpression, ginput.NormalizedExpression,
		); err != nil {
			return fmt.Errorf("append gene result: %w", err)
		}
	}

	return appender.Flush()
}

// WriteInteractionResults batch-inserts interaction rows using the Appender API.
func (s *Store) WriteInteractionResults(sample string, results []*analysis.InteractionResult) error {
	if len(results) == 0 {
		return nil
	}

	appender, cleanup, err := s.newAppender("interaction_results")
	if err != nil {
		return err
	}
	defer cleanup()

	for _, r := range results {
		inter := r.Interaction
		var m analysis.InteractionMetrics
		if r.Metrics != nil {
			m = *r.Metrics
		}
		if err := appender.AppendRow(
			sample, inter.ID, inter.Type, inter.LigandSymbol, inter.ReceptorSymbol,
			selectedID(r.LigandCancer), selectedID(r.LigandStroma),
			selectedID(r.ReceptorCancer), selectedID(r.ReceptorStroma),
			r.Metrics != nil,
			m.AverageCancerToStroma, m.AverageStromaToCancer,
			m.LigandRatioCancer, m.LigandRatioStroma,
			m.ReceptorRatioCancer, m.ReceptorRatioStroma,
			m.LigandShareSameReceptor,
		); err != nil {
			return fmt.Errorf("append interaction result: %w", err)
		}
	}

	return appender.Flush()
}

// newAppender opens a DuckDB appender for the given table. The returned
// cleanup closes both the appender and its connection.
func (s *Store) newAppender(table string) (*goduckdb.Appender, func(), error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}

	return appender, func() {
		appender.Close()
		conn.Close()
	}, nil
}

// LookupByReceptor queries interaction rows for a receptor symbol.
func (s *Store) LookupByReceptor(sample, receptorSymbol string) ([]InteractionRow, error) {
	rows, err := s.db.Query(`SELECT
		sample, interaction_id, type, ligand_symbol, receptor_symbol,
		ligand_cancer_gene, ligand_stroma_gene,
		receptor_cancer_gene, receptor_stroma_gene,
		has_metrics,
		average_cancer2stroma, average_stroma2cancer,
		ligand_ratio_cancer, ligand_ratio_stroma,
		receptor_ratio_cancer, receptor_ratio_stroma,
		ligand_share_same_receptor
		FROM interaction_results
		WHERE sample=? AND receptor_symbol=?
		ORDER BY interaction_id`,
		sample, receptorSymbol)
	if err != nil {
		return nil, fmt.Errorf("query by receptor: %w", err)
	}
	defer rows.Close()

	var results []InteractionRow
	for rows.Next() {
		var row InteractionRow
		if err := rows.Scan(
			&row.Sample, &row.InteractionID, &row.Type, &row.LigandSymbol, &row.ReceptorSymbol,
			&row.LigandCancerGene, &row.LigandStromaGene,
			&row.ReceptorCancerGene, &row.ReceptorStromaGene,
			&row.HasMetrics,
			&row.Metrics.AverageCancerToStroma, &row.Metrics.AverageStromaToCancer,
			&row.Metrics.LigandRatioCancer, &row.Metrics.LigandRatioStroma,
			&row.Metrics.ReceptorRatioCancer, &row.Metrics.ReceptorRatioStroma,
			&row.Metrics.LigandShareSameReceptor,
		); err != nil {
			return nil, fmt.Errorf("scan interaction result: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction results: %w", err)
	}
	return results, nil
}

// ClearSample removes all stored rows for a sample so it can be rescored.
func (s *Store) ClearSample(sample string) error {
	if _, err := s.db.Exec("DELETE FROM gene_results WHERE sample=?", sample); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM interaction_results WHERE sample=?", sample)
	return err
}

func selectedID(g *input.GeneInput) string {
	if g == nil {
		return ""
	}
	return g.EntrezID
}
