// Package postgres provides PostgreSQL implementations of the store
// interfaces. Deck documents are stored as JSONB columns so the row
// layout matches the durable record contract; knowledge state and
// interaction logs get relational tables of their own.
package postgres
