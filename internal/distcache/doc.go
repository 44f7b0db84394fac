// Package distcache memoizes an expensive pairwise distance function over item
// indexes. Each unordered pair is evaluated at most once for the lifetime of a
// Cache, including when many goroutines ask for the same pair concurrently.
package distcache
