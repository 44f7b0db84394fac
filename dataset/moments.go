package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadMoments reads whitespace separated lines of the form
// "label f1 f2 ...", as in the Corel color-moment feature files. Blank lines
// are skipped; every feature line must have the same dimension.
func ReadMoments(r io.Reader) (*Dataset[[]float32], error) {
	ds := &Dataset[[]float32]{Name: string(FormatMoments)}
	scanner := bufio.NewScanner(r)
	dim := -1
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("dataset: line %d has no features", line)
		}
		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("dataset: invalid feature %q on line %d: %w", field, line, err)
			}
			vec[i] = float32(v)
		}
		if dim >= 0 && len(vec) != dim {
			return nil, fmt.Errorf("dataset: line %d has %d features, want %d", line, len(vec), dim)
		}
		dim = len(vec)
		ds.Append(fields[0], vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: failed to read moments: %w", err)
	}
	return ds, nil
}
