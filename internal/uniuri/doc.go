// Package uniuri generates cryptographically secure random strings for object keys.
package uniuri
