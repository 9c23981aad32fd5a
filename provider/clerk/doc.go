// Package clerk provides Clerk JWT validation and claims mapping.
//
// Use this package with vitals.WithTokenValidator or the jwtware middleware
// to accept Clerk-issued tokens while preserving local session behavior.
package clerk
