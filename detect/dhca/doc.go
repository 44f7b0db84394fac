// Package dhca ranks the n most anomalous items of a dataset exactly while
// evaluating as few pairwise distances as possible. It seeds every item's
// neighbor set cheaply, then repeatedly runs a divisive clustering pass
// anchored on the highest-ranked unverified items, verifying those anchors
// exhaustively, until the top n items all carry exact scores.
package dhca
