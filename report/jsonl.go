package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/viant/outlier/detect"
)

// Write encodes r as a single JSON line.
func Write(w io.Writer, r *detect.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: failed to encode: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// AppendFile appends r to the JSON lines file at path, creating the file and
// its directory when missing.
func AppendFile(path string, r *detect.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: failed to create %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("report: failed to open %s: %w", path, err)
	}
	if err := Write(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadAll decodes every report in a JSON lines stream.
func ReadAll(r io.Reader) ([]*detect.Report, error) {
	dec := json.NewDecoder(r)
	var out []*detect.Report
	for {
		var rep detect.Report
		err := dec.Decode(&rep)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("report: failed to decode line %d: %w", len(out)+1, err)
		}
		out = append(out, &rep)
	}
}
