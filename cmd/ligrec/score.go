package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/ligrec/internal/analysis"
	"github.com/inodb/ligrec/internal/biodb"
	"github.com/inodb/ligrec/internal/duckdb"
	"github.com/inodb/ligrec/internal/input"
	"github.com/inodb/ligrec/internal/output"
)

func newScoreCmd() *cobra.Command {
	var (
		genesPath         string
		interactionsPath  string
		cancerListPath    string
		stromalListPath   string
		stromalRefseqPath string
		mysqlDSN          string
		sample            string
		dbPath            string
		geneReportPath    string
		interactionReport string
		workers           int
	)

	cmd := &cobra.Command{
		Use:   "score <expression-file>",
		Short: "Score ligand-receptor interactions for one sample",
		Long: `Score all curated ligand-receptor interactions for a single sample.

The expression file is a tab-separated table with refseq_id and
true_expression columns holding the bias-corrected per-transcript read-count
estimates (use '-' for stdin). The reference database is loaded either from
tab-separated files or from a curated MySQL schema.`,
		Example: `  ligrec score --genes genes.tsv --interactions interactions.tsv \
      --cancer-ids cancer.txt --stromal-ids stromal.txt sample.expr.tsv
  ligrec score --mysql 'user:pass@tcp(db:3306)/interactome' sample.expr.tsv
  ligrec score --db results.duckdb --sample TCGA-XX-0001 sample.expr.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			// Config file and environment supply defaults for the
			// viper-bound flags; explicit flags win.
			return runScore(scoreOptions{
				expressionPath:    args[0],
				genesPath:         genesPath,
				interactionsPath:  interactionsPath,
				cancerListPath:    cancerListPath,
				stromalListPath:   stromalListPath,
				stromalRefseqPath: stromalRefseqPath,
				mysqlDSN:          viper.GetString("reference.mysql"),
				sample:            sample,
				dbPath:            viper.GetString("results.db"),
				geneReportPath:    geneReportPath,
				interactionReport: interactionReport,
				workers:           viper.GetInt("score.workers"),
			}, logger)
		},
	}

	cmd.Flags().StringVar(&genesPath, "genes", "", "Reference gene/transcript table (TSV)")
	cmd.Flags().StringVar(&interactionsPath, "interactions", "", "Curated interaction table (TSV)")
	cmd.Flags().StringVar(&cancerListPath, "cancer-ids", "", "Cancer gene Entrez id list")
	cmd.Flags().StringVar(&stromalListPath, "stromal-ids", "", "Stromal gene Entrez id list")
	cmd.Flags().StringVar(&stromalRefseqPath, "stromal-refseq-ids", "", "Stromal RefSeq id list (optional)")
	cmd.Flags().StringVar(&mysqlDSN, "mysql", "",
		"MySQL DSN for the reference database (overrides the TSV flags)")
	cmd.Flags().StringVar(&sample, "sample", "sample", "Sample name used in reports and the result store")
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB file to persist results to (optional)")
	cmd.Flags().StringVar(&geneReportPath, "gene-report", "", "Gene expression report file (optional)")
	cmd.Flags().StringVarP(&interactionReport, "output", "o", "", "Interaction report file (default: stdout)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count for the metrics pass (0 = serial)")

	viper.BindPFlag("reference.mysql", cmd.Flags().Lookup("mysql"))
	viper.BindPFlag("results.db", cmd.Flags().Lookup("db"))
	viper.BindPFlag("score.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

type scoreOptions struct {
	expressionPath    string
	genesPath         string
	interactionsPath  string
	cancerListPath    string
	stromalListPath   string
	stromalRefseqPath string
	mysqlDSN          string
	sample            string
	dbPath            string
	geneReportPath    string
	interactionReport string
	workers           int
}

func runScore(opts scoreOptions, logger *zap.Logger) error {
	db, err := loadReference(opts, logger)
	if err != nil {
		return err
	}
	logger.Info("reference database loaded",
		zap.Int("genes", db.GeneCount()),
		zap.Int("interactions", len(db.Interactions)))

	in := input.NewInput(db)
	reader, err := input.NewExpressionReader(opts.expressionPath)
	if err != nil {
		return err
	}
	defer reader.Close()
	if err := reader.ReadAll(in); err != nil {
		return err
	}
	if reader.Unknown > 0 {
		logger.Warn("expression rows for unknown transcripts skipped",
			zap.Int("rows", reader.Unknown))
	}

	analyzer := analysis.NewAnalyzer(db, in)
	analyzer.SetLogger(logger)
	analyzer.SetWorkers(opts.workers)

	results, err := analyzer.Run()
	if err != nil {
		return err
	}

	if err := writeReports(opts, db, in, results); err != nil {
		return err
	}

	if opts.dbPath != "" {
		if err := persistResults(opts, db, in, results); err != nil {
			return err
		}
		logger.Info("results persisted", zap.String("db", opts.dbPath), zap.String("sample", opts.sample))
	}

	return nil
}

func loadReference(opts scoreOptions, logger *zap.Logger) (*biodb.BioDB, error) {
	if opts.mysqlDSN != "" {
		logger.Info("loading reference database from mysql")
		return biodb.ImportFromMySQL(opts.mysqlDSN)
	}

	if opts.genesPath == "" || opts.interactionsPath == "" ||
		opts.cancerListPath == "" || opts.stromalListPath == "" {
		return nil, fmt.Errorf("either --mysql or all of --genes, --interactions, --cancer-ids and --stromal-ids are required")
	}

	db := biodb.New()
	loader := biodb.NewLoader(opts.genesPath, opts.interactionsPath,
		opts.cancerListPath, opts.stromalListPath, opts.stromalRefseqPath)
	if err := loader.Load(db); err != nil {
		return nil, err
	}
	return db, nil
}

func writeReports(opts scoreOptions, db *biodb.BioDB, in *input.Input, results []*analysis.InteractionResult) error {
	out := os.Stdout
	if opts.interactionReport != "" {
		f, err := os.Create(opts.interactionReport)
		if err != nil {
			return fmt.Errorf("create interaction report: %w", err)
		}
		defer f.Close()
		out = f
	}

	iw := output.NewInteractionWriter(out)
	if err := iw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range results {
		if err := iw.Write(r); err != nil {
			return err
		}
	}
	if err := iw.Flush(); err != nil {
		return err
	}

	if opts.geneReportPath == "" {
		return nil
	}

	f, err := os.Create(opts.geneReportPath)
	if err != nil {
		return fmt.Errorf("create gene report: %w", err)
	}
	defer f.Close()

	categoryOf := categoryLookup(db)
	gw := output.NewGeneWriter(f)
	if err := gw.WriteHeader(); err != nil {
		return err
	}
	for _, id := range db.EntrezIDs() {
		if err := gw.Write(db.Genes[id], in.GeneInputs[id], categoryOf(id)); err != nil {
			return err
		}
	}
	return gw.Flush()
}

func persistResults(opts scoreOptions, db *biodb.BioDB, in *input.Input, results []*analysis.InteractionResult) error {
	store, err := duckdb.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	// Rescoring a sample replaces its previous rows.
	if err := store.ClearSample(opts.sample); err != nil {
		return fmt.Errorf("clear sample: %w", err)
	}
	if err := store.WriteGeneResults(opts.sample, db, in, categoryLookup(db)); err != nil {
		return err
	}
	return store.WriteInteractionResults(opts.sample, results)
}

// categoryLookup maps an Entrez id to its normalization category name.
func categoryLookup(db *biodb.BioDB) func(string) string {
	category := make(map[string]string, len(db.CancerEntrezIDs)+len(db.StromalEntrezIDs))
	for _, id := range db.CancerEntrezIDs {
		category[id] = "cancer"
	}
	for _, id := range db.StromalEntrezIDs {
		category[id] = "stromal"
	}
	return func(id string) string {
		return category[id]
	}
}
