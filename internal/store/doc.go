// Package store defines the persistence interfaces of the study
// engine, along with the shared error family and transaction helpers.
// Implementations live in internal/platform/postgres.
package store
