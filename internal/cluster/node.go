package cluster

// Node is a group of items taking part in one divisive step.
type Node struct {
	Members []int
	// Centroids anchor the child groups; when empty they are sampled at random.
	Centroids []int
	// VerifyCenters requests exhaustive verification of the centroids against
	// every member of the node.
	VerifyCenters bool
}

// Stats summarizes one refinement.
type Stats struct {
	Splits   int
	Leaves   int
	Pruned   int
	Verified int
}
