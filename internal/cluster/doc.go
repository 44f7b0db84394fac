// Package cluster implements the divisive partition step that drives outlier
// refinement. A step assigns every member of a group to its nearest centroid,
// tightening both sides' neighbor sets with the single distance evaluated,
// prunes members whose score falls to the threshold, optionally verifies the
// centroids exhaustively, and queues oversized child groups for further
// splitting on an explicit work-list.
package cluster
