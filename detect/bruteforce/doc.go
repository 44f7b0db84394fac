// Package bruteforce scores every item against every other item. It serves as
// the reference answer and the cost ceiling for the clustering detector.
package bruteforce
