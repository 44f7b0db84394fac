package dataset

import (
	"fmt"
	"strings"
)

// Dataset is an ordered collection of items. Item indexes are stable and are
// the indexes reported by the detectors.
type Dataset[T any] struct {
	Name   string
	Labels []string
	Items  []T
	// Keys holds the row id of each item when loaded from a Store.
	Keys []int64
}

// Len returns the number of items.
func (d *Dataset[T]) Len() int { return len(d.Items) }

// Append adds an item with its label.
func (d *Dataset[T]) Append(label string, item T) {
	d.Labels = append(d.Labels, label)
	d.Items = append(d.Items, item)
}

// Format names a supported input format.
type Format string

const (
	FormatWeightHeight Format = "csv-weight-height"
	FormatMoments      Format = "moments"
	FormatFASTA        Format = "fasta"
	FormatSQLite       Format = "sqlite"
)

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatWeightHeight, FormatMoments, FormatFASTA, FormatSQLite:
		return f, nil
	case "csv":
		return FormatWeightHeight, nil
	case "fa":
		return FormatFASTA, nil
	default:
		return "", fmt.Errorf("dataset: unsupported format %q", name)
	}
}

// IsText reports whether the format yields text items.
func (f Format) IsText() bool { return f == FormatFASTA }
