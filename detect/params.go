package detect

// Params configures a detection run.
type Params struct {
	// KNN is the neighbor-set size used for scoring.
	KNN int `json:"kNN" yaml:"knn"`
	// K is the cluster fan-out: centroids per divisive step.
	K int `json:"k,omitempty" yaml:"k"`
	// N is the number of outliers to report.
	N int `json:"n" yaml:"n"`
	// MaxClusterSize is the largest group left unsplit within a round.
	MaxClusterSize int `json:"maxClusterSize,omitempty" yaml:"max_cluster_size"`
}

// Validate checks the parameters of a clustering run against a dataset of
// size items.
func (p Params) Validate(size int) error {
	if err := p.ValidateBaseline(size); err != nil {
		return err
	}
	return p.validateClustering()
}

// ValidateBaseline checks the parameters used by every detector.
func (p Params) ValidateBaseline(size int) error {
	if err := p.validateScoring(); err != nil {
		return err
	}
	if p.KNN >= size {
		return &ConfigError{Field: "kNN", Value: p.KNN, Reason: "must be smaller than the dataset size", Size: size}
	}
	if p.N > size {
		return &ConfigError{Field: "n", Value: p.N, Reason: "must not exceed the dataset size", Size: size}
	}
	return nil
}

// ValidateShape checks the clustering parameters that do not depend on the
// dataset size, so they can be rejected before any data is loaded.
func (p Params) ValidateShape() error {
	if err := p.validateScoring(); err != nil {
		return err
	}
	return p.validateClustering()
}

func (p Params) validateScoring() error {
	if p.KNN < 1 {
		return &ConfigError{Field: "kNN", Value: p.KNN, Reason: "must be positive"}
	}
	if p.N < 1 {
		return &ConfigError{Field: "n", Value: p.N, Reason: "must be positive"}
	}
	return nil
}

func (p Params) validateClustering() error {
	if p.K < 1 {
		return &ConfigError{Field: "k", Value: p.K, Reason: "must be positive"}
	}
	if p.MaxClusterSize < p.K {
		return &ConfigError{Field: "maxClusterSize", Value: p.MaxClusterSize, Reason: "must be at least k"}
	}
	return nil
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{KNN: 5, K: 5, N: 10, MaxClusterSize: 50}
}
