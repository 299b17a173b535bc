package stringdb

// MappedIdentifier is one row of a get_string_ids response, associating an
// input query term with its canonical STRING protein.
type MappedIdentifier struct {
	QueryIndex    int    `json:"queryIndex"`
	QueryItem     string `json:"queryItem,omitempty"`
	StringID      string `json:"stringId"`
	NCBITaxonID   int    `json:"ncbiTaxonId"`
	TaxonName     string `json:"taxonName"`
	PreferredName string `json:"preferredName"`
	Annotation    string `json:"annotation"`
}

// Interaction is a single edge from the network or interaction_partners
// endpoints. The channel sub-scores break the combined score down by
// evidence type.
type Interaction struct {
	StringIDA       string  `json:"stringId_A"`
	StringIDB       string  `json:"stringId_B"`
	PreferredNameA  string  `json:"preferredName_A"`
	PreferredNameB  string  `json:"preferredName_B"`
	NCBITaxonID     string  `json:"ncbiTaxonId"`
	Score           float64 `json:"score"`
	NeighborScore   float64 `json:"nscore"`
	FusionScore     float64 `json:"fscore"`
	PhyloScore      float64 `json:"pscore"`
	CoexprScore     float64 `json:"ascore"`
	ExperimentScore float64 `json:"escore"`
	DatabaseScore   float64 `json:"dscore"`
	TextmineScore   float64 `json:"tscore"`
}

// EnrichmentRecord is one over-represented functional term from the
// enrichment endpoint.
type EnrichmentRecord struct {
	Category       string   `json:"category"`
	Term           string   `json:"term"`
	GenesInSet     int      `json:"number_of_genes"`
	GenesInBg      int      `json:"number_of_genes_in_background"`
	NCBITaxonID    int      `json:"ncbiTaxonId"`
	InputGenes     []string `json:"inputGenes"`
	PreferredNames []string `json:"preferredNames"`
	PValue         float64  `json:"p_value"`
	FDR            float64  `json:"fdr"`
	Description    string   `json:"description"`
}

// PPIEnrichmentRecord reports whether a protein set has more interactions
// among its members than expected by chance.
type PPIEnrichmentRecord struct {
	NumberOfNodes         int     `json:"number_of_nodes"`
	NumberOfEdges         int     `json:"number_of_edges"`
	AverageNodeDegree     float64 `json:"average_node_degree"`
	ClusteringCoefficient float64 `json:"local_clustering_coefficient"`
	ExpectedEdges         float64 `json:"expected_number_of_edges"`
	PValue                float64 `json:"p_value"`
}

// VersionInfo describes the STRING database release behind the API.
type VersionInfo struct {
	StringVersion string `json:"string_version"`
	StableAddress string `json:"stable_address"`
}
