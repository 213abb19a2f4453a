// Package helper provides test doubles shared by the package tests of this module.
//
// TestLogHandler captures slog records so that tests can assert on the structured
// log output of the generator, the CSV sink and the Postgres loader.
package helper
