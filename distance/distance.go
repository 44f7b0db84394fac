package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/viant/vec/search"
)

// Func computes the distance between two items. Implementations must be
// deterministic, symmetric and non-negative; detectors do not verify this and
// rankings are undefined when the contract is broken.
type Func[T any] func(a, b T) float64

// Metric enumerates the built-in metrics.
type Metric string

const (
	MetricL2          Metric = "l2"
	MetricCosine      Metric = "cosine"
	MetricLevenshtein Metric = "levenshtein"
)

// ParseMetric resolves a metric name, accepting "euclidean" as an alias of l2.
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case MetricL2, "euclidean", "":
		return MetricL2, nil
	case MetricCosine:
		return MetricCosine, nil
	case MetricLevenshtein, "edit":
		return MetricLevenshtein, nil
	}
	return "", fmt.Errorf("distance: unsupported metric %q", name)
}

// IsText reports whether the metric operates on strings.
func (m Metric) IsText() bool { return m == MetricLevenshtein }

// Vector resolves the callable implementation for vector metrics.
func (m Metric) Vector() (Func[[]float32], error) {
	switch m {
	case MetricL2:
		return L2, nil
	case MetricCosine:
		return Cosine, nil
	}
	return nil, fmt.Errorf("distance: metric %q does not apply to vectors", m)
}

// Text resolves the callable implementation for string metrics.
func (m Metric) Text() (Func[string], error) {
	if m == MetricLevenshtein {
		return Levenshtein, nil
	}
	return nil, fmt.Errorf("distance: metric %q does not apply to text", m)
}

// L2 returns the Euclidean distance between two vectors of equal length.
func L2(a, b []float32) float64 {
	return float64(search.Float32s(a).EuclideanDistance(b))
}

// Cosine returns the cosine distance (1 - cosine similarity). Two zero vectors
// are at distance 0; a zero vector is at distance 1 from any other vector.
func Cosine(a, b []float32) float64 {
	va := search.Float32s(a)
	ma := va.Magnitude()
	mb := search.Float32s(b).Magnitude()
	switch {
	case ma == 0 && mb == 0:
		return 0
	case ma == 0 || mb == 0:
		return 1
	}
	d := float64(va.CosineDistance(b))
	if d < 0 {
		// rounding on nearly parallel vectors
		return 0
	}
	return d
}

// Levenshtein returns the edit distance between two strings.
func Levenshtein(a, b string) float64 {
	return float64(levenshtein.ComputeDistance(a, b))
}

// Abs returns |a-b| for one-dimensional points.
func Abs(a, b float64) float64 {
	return math.Abs(a - b)
}
