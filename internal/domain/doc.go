// Package domain contains the core entities of the study engine: decks,
// cards, per-card spaced repetition data, per-user knowledge state, and
// interaction logs. Entities validate themselves; scheduling behavior
// lives in the sm2, scoring, recall, and scheduler packages.
package domain
