// Package report persists detection reports. Reports are appended to JSON
// lines files, one report per line, or recorded in a SQLite runs table
// alongside the dataset they were computed for.
package report
