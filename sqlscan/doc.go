// Package sqlscan exposes outlier detection as a SQLite virtual table.
//
//	CREATE VIRTUAL TABLE scan USING outlier_scan(knn=5, k=5, n=3, max_cluster_size=10, metric=l2, seed=1, timeout=30s);
//	SELECT doc_id, label, score, rank FROM scan WHERE dataset MATCH 'items';
//
// The MATCH argument names an items table (see package dataset). Each query
// runs a detection over the whole table and returns the top n items, most
// anomalous first. A scan is cancelled once timeout elapses; without it a
// scan runs to completion.
package sqlscan
