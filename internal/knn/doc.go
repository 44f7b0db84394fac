// Package knn maintains, per item, the best-known k candidate neighbors and
// the resulting outlier score (mean neighbor distance). A Set only ever
// tightens: replacing the worst candidate with a strictly closer one, so its
// score is always an upper bound on the item's true k-NN average.
package knn
