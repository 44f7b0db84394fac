// Package distance defines the pairwise metric contract used by the outlier
// detectors and a small set of built-in metrics:
//   - l2 and cosine over float32 vectors (backed by github.com/viant/vec)
//   - levenshtein edit distance over strings
//   - abs for one-dimensional float64 points
package distance
