// Package duckdb persists per-sample scoring results in a DuckDB database
// so downstream tooling can query them with SQL.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for scoring results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create result directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS gene_results (
		sample VARCHAR,
		entrez_id VARCHAR,
		symbol VARCHAR,
		category VARCHAR,
		representative_refseq VARCHAR,
		representative_expression DOUBLE,
		normalized_expression DOUBLE,
		PRIMARY KEY (sample, entrez_id)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS interaction_results (
		sample VARCHAR,
		interaction_id VARCHAR,
		type VARCHAR,
		ligand_symbol VARCHAR,
		receptor_symbol VARCHAR,
		ligand_cancer_gene VARCHAR,
		ligand_stroma_gene VARCHAR,
		receptor_cancer_gene VARCHAR,
		receptor_stroma_gene VARCHAR,
		has_metrics BOOLEAN,
		average_cancer2stroma DOUBLE,
		average_stroma2cancer DOUBLE,
		ligand_ratio_cancer DOUBLE,
		ligand_ratio_stroma DOUBLE,
		receptor_ratio_cancer DOUBLE,
		receptor_ratio_stroma DOUBLE,
		ligand_share_same_receptor DOUBLE,
		PRIMARY KEY (sample, interaction_id)
	)`)
	return err
}
