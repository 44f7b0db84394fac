// Package detect defines the contract shared by the outlier detectors in this
// module: run parameters, the report they produce, typed errors and options.
// Implementations include an exact divisive-clustering engine (dhca) and a
// brute-force baseline used as a correctness reference.
package detect
