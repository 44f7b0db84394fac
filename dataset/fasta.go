package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// labelOffset skips the ">" marker and a fixed-width source tag in headers
// such as ">hg|NM_000014.6 ...".
const labelOffset = 4

// ReadFASTA reads sequences from a FASTA-style file. A line starting with '>'
// opens a new record labeled with the header text after the source tag;
// following lines are concatenated into the record's sequence.
func ReadFASTA(r io.Reader) (*Dataset[string], error) {
	ds := &Dataset[string]{Name: string(FormatFASTA)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var label string
	var seq strings.Builder
	open := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.HasPrefix(line, ">") {
			if open {
				ds.Append(label, seq.String())
				seq.Reset()
			}
			label, open = "", true
			if len(line) > labelOffset {
				label = line[labelOffset:]
			}
			continue
		}
		if !open {
			if line == "" {
				continue
			}
			return nil, fmt.Errorf("dataset: sequence data before the first header")
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: failed to read fasta: %w", err)
	}
	if open {
		ds.Append(label, seq.String())
	}
	return ds, nil
}
