package biodb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Loader loads the reference database from tab-separated text files.
//
// The gene file has one row per transcript variant with columns
// entrez_id, symbol, refseq_id and an optional length column; variant order
// within a gene follows file order. The interaction file has columns
// id, type, ligand_symbol, receptor_symbol, four comma-separated Entrez id
// lists (ligand_cancer, ligand_stroma, receptor_cancer, receptor_stroma)
// and two 0/1 validity flags. Id list files carry one id per line.
// All files may be gzipped and may contain #-prefixed comment lines.
type Loader struct {
	genePath          string
	interactionPath   string
	cancerListPath    string
	stromalListPath   string
	stromalRefseqPath string
}

// NewLoader creates a loader for the given reference file paths.
// stromalRefseqPath may be empty; the stromal refseq list is then left nil.
func NewLoader(genePath, interactionPath, cancerListPath, stromalListPath, stromalRefseqPath string) *Loader {
	return &Loader{
		genePath:          genePath,
		interactionPath:   interactionPath,
		cancerListPath:    cancerListPath,
		stromalListPath:   stromalListPath,
		stromalRefseqPath: stromalRefseqPath,
	}
}

// Load reads all reference files into db and validates the result.
func (l *Loader) Load(db *BioDB) error {
	if err := l.loadGenes(db); err != nil {
		return fmt.Errorf("load genes: %w", err)
	}

	var err error
	if db.CancerEntrezIDs, err = readIDList(l.cancerListPath); err != nil {
		return fmt.Errorf("load cancer gene list: %w", err)
	}
	if db.StromalEntrezIDs, err = readIDList(l.stromalListPath); err != nil {
		return fmt.Errorf("load stromal gene list: %w", err)
	}
	if l.stromalRefseqPath != "" {
		if db.StromalRefseqIDs, err = readIDList(l.stromalRefseqPath); err != nil {
			return fmt.Errorf("load stromal refseq list: %w", err)
		}
	}

	if err := l.loadInteractions(db); err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}

	return db.Validate()
}

// openMaybeGzip opens path, transparently decompressing gzipped files.
// The returned closer closes both the gzip reader and the file.
func openMaybeGzip(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open gzip reader: %w", err)
		}
		return gz, func() error {
			gz.Close()
			return f.Close()
		}, nil
	}

	return f, f.Close, nil
}

func (l *Loader) loadGenes(db *BioDB) error {
	r, closeFn, err := openMaybeGzip(l.genePath)
	if err != nil {
		return err
	}
	defer closeFn()

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return fmt.Errorf("line %d: expected at least 3 columns, got %d", lineNum, len(fields))
		}
		entrezID, symbol, refseqID := fields[0], fields[1], fields[2]

		length := 0
		if len(fields) > 3 && fields[3] != "" {
			length, err = strconv.Atoi(fields[3])
			if err != nil {
				return fmt.Errorf("line %d: bad transcript length %q", lineNum, fields[3])
			}
		}

		gene := db.Genes[entrezID]
		if gene == nil {
			gene = &Gene{EntrezID: entrezID, Symbol: symbol}
			db.AddGene(gene)
		}
		gene.Variants = append(gene.Variants, &Variant{RefseqID: refseqID, Length: length})
	}
	return scanner.Err()
}

func (l *Loader) loadInteractions(db *BioDB) error {
	r, closeFn, err := openMaybeGzip(l.interactionPath)
	if err != nil {
		return err
	}
	defer closeFn()

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 10 {
			return fmt.Errorf("line %d: expected 10 columns, got %d", lineNum, len(fields))
		}

		inter := &Interaction{
			ID:             fields[0],
			Type:           fields[1],
			LigandSymbol:   fields[2],
			ReceptorSymbol: fields[3],
		}

		for i, set := range []*[]*Gene{
			&inter.LigandCancer, &inter.LigandStroma,
			&inter.ReceptorCancer, &inter.ReceptorStroma,
		} {
			genes, err := resolveGeneList(db, fields[4+i])
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
			*set = genes
		}

		if inter.ValidCancerToStroma, err = parseFlag(fields[8]); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if inter.ValidStromaToCancer, err = parseFlag(fields[9]); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		db.Interactions = append(db.Interactions, inter)
	}
	return scanner.Err()
}

// resolveGeneList resolves a comma-separated Entrez id list against the gene
// table. An empty field yields an empty set.
func resolveGeneList(db *BioDB, field string) ([]*Gene, error) {
	if field == "" || field == "-" {
		return nil, nil
	}
	var genes []*Gene
	for _, id := range strings.Split(field, ",") {
		g := db.Genes[id]
		if g == nil {
			return nil, fmt.Errorf("unknown entrez id %s in interaction gene set", id)
		}
		genes = append(genes, g)
	}
	return genes, nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("bad validity flag %q", s)
}

func readIDList(path string) ([]string, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, scanner.Err()
}
