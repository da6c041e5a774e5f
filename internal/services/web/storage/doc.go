// Package storage declares persistence interfaces for web-owned state.
//
// The web service stores only in-progress onboarding drafts. Completed
// household profiles live in the profile store.
package storage
