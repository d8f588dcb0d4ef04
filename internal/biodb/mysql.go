package biodb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// ImportFromMySQL loads the reference database from a curated MySQL schema.
// dsn is a go-sql-driver DSN (e.g. "user:pass@tcp(host:3306)/interactome").
//
// Expected tables:
//
//	gene(entrez_id, symbol, category)            category: cancer|stromal|''
//	gene_refseq(entrez_id, refseq_id, length, stromal)
//	interaction(id, type, ligand_symbol, receptor_symbol,
//	            valid_cancer2stroma, valid_stroma2cancer)
//	interaction_gene(interaction_id, entrez_id, role)
//	            role: ligand_cancer|ligand_stroma|receptor_cancer|receptor_stroma
func ImportFromMySQL(dsn string) (*BioDB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	db := New()
	if err := importGenes(conn, db); err != nil {
		return nil, err
	}
	if err := importVariants(conn, db); err != nil {
		return nil, err
	}
	if err := importInteractions(conn, db); err != nil {
		return nil, err
	}

	if err := db.Validate(); err != nil {
		return nil, err
	}
	return db, nil
}

func importGenes(conn *sql.DB, db *BioDB) error {
	rows, err := conn.Query("SELECT entrez_id, symbol, category FROM gene")
	if err != nil {
		return fmt.Errorf("query genes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entrezID, symbol, category string
		if err := rows.Scan(&entrezID, &symbol, &category); err != nil {
			return fmt.Errorf("scan gene: %w", err)
		}
		db.AddGene(&Gene{EntrezID: entrezID, Symbol: symbol})
		switch category {
		case "cancer":
			db.CancerEntrezIDs = append(db.CancerEntrezIDs, entrezID)
		case "stromal":
			db.StromalEntrezIDs = append(db.StromalEntrezIDs, entrezID)
		}
	}
	return rows.Err()
}

func importVariants(conn *sql.DB, db *BioDB) error {
	// Ordered so that variant indices, and therefore representative-
	// transcript tie-breaks, are reproducible across imports.
	rows, err := conn.Query(
		"SELECT entrez_id, refseq_id, length, stromal FROM gene_refseq ORDER BY entrez_id, refseq_id")
	if err != nil {
		return fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entrezID, refseqID string
		var length int
		var stromal bool
		if err := rows.Scan(&entrezID, &refseqID, &length, &stromal); err != nil {
			return fmt.Errorf("scan variant: %w", err)
		}
		g := db.Genes[entrezID]
		if g == nil {
			return fmt.Errorf("gene_refseq references unknown entrez id %s", entrezID)
		}
		g.Variants = append(g.Variants, &Variant{RefseqID: refseqID, Length: length})
		if stromal {
			db.StromalRefseqIDs = append(db.StromalRefseqIDs, refseqID)
		}
	}
	return rows.Err()
}

func importInteractions(conn *sql.DB, db *BioDB) error {
	rows, err := conn.Query(`SELECT id, type, ligand_symbol, receptor_symbol,
		valid_cancer2stroma, valid_stroma2cancer FROM interaction ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*Interaction)
	for rows.Next() {
		inter := &Interaction{}
		if err := rows.Scan(&inter.ID, &inter.Type, &inter.LigandSymbol,
			&inter.ReceptorSymbol, &inter.ValidCancerToStroma, &inter.ValidStromaToCancer); err != nil {
			return fmt.Errorf("scan interaction: %w", err)
		}
		byID[inter.ID] = inter
		db.Interactions = append(db.Interactions, inter)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	grows, err := conn.Query(
		"SELECT interaction_id, entrez_id, role FROM interaction_gene ORDER BY interaction_id, entrez_id")
	if err != nil {
		return fmt.Errorf("query interaction genes: %w", err)
	}
	defer grows.Close()

	for grows.Next() {
		var interID, entrezID, role string
		if err := grows.Scan(&interID, &entrezID, &role); err != nil {
			return fmt.Errorf("scan interaction gene: %w", err)
		}
		inter := byID[interID]
		if inter == nil {
			return fmt.Errorf("interaction_gene references unknown interaction %s", interID)
		}
		g := db.Genes[entrezID]
		if g == nil {
			return fmt.Errorf("interaction_gene references unknown entrez id %s", entrezID)
		}
		switch role {
		case "ligand_cancer":
			inter.LigandCancer = append(inter.LigandCancer, g)
		case "ligand_stroma":
			inter.LigandStroma = append(inter.LigandStroma, g)
		case "receptor_cancer":
			inter.ReceptorCancer = append(inter.ReceptorCancer, g)
		case "receptor_stroma":
			inter.ReceptorStroma = append(inter.ReceptorStroma, g)
		default:
			return fmt.Errorf("interaction %s: unknown role %q", interID, role)
		}
	}
	return grows.Err()
}
