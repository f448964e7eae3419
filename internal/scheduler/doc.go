// Package scheduler implements the two non-spaced card schedulers:
// the bucket scheduler behind learn mode (N ordered mastery tiers,
// cards promoted or demoted one tier per answer) and the round
// scheduler behind review mode (repeated rounds over a shrinking
// still-learning pool until it empties). Both operate on the persisted
// state types in the domain package and report card-not-found
// conditions explicitly so callers can decide how to degrade.
package scheduler
