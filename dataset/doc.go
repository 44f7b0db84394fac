// Package dataset loads the items scored by the detectors. It includes:
//   - Dataset: ordered items with per-item labels
//   - readers for weight/height CSV, color-moment and FASTA-style files
//   - a SQLite-backed Store for vector (BLOB) and text items
//   - vector encoding shared with the SQL distance functions
package dataset
