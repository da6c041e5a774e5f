// Package sqlite provides the web draft persistence adapter backed by SQLite.
package sqlite
