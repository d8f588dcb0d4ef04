package biodb

// Interaction describes one curated ligand-receptor relationship.
//
// The four role sets hold the candidate genes for each compartment/role
// combination. ReceptorSymbol is not unique: several interactions may target
// the same receptor, and downstream scoring cross-references them by symbol.
type Interaction struct {
	ID             string // Interaction identifier (e.g. KEGG pathway entry)
	Type           string // Curation source (e.g. KEGG, HPRD)
	LigandSymbol   string
	ReceptorSymbol string

	LigandCancer   []*Gene
	LigandStroma   []*Gene
	ReceptorCancer []*Gene
	ReceptorStroma []*Gene

	ValidCancerToStroma bool
	ValidStromaToCancer bool
}
