// Package main provides the entry point of landing, a personal landing page
// with a before/after feed and an admin dashboard. Services, posts and the
// page appearance are stored with gorm, uploaded images in a bucket on the
// local filesystem, and the admin signs in with a local account.
package main
