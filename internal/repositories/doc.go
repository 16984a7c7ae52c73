// Package repositories implements SQLite persistence for the entity store and the session slot.
//
// The in-memory [store.Store] stays the source of truth while a command runs; these repositories
// load it at start and write it back after a mutation.
//
// Key Implementations:
//   - [ProfileRepository] : author profiles
//   - [ListRepository] : list headers in insertion order
//   - [ItemRepository] : ranked list items
//   - [VoteRepository] : one vote per (list, user)
//   - [CommentRepository] : comments, oldest first
//   - [SnapshotRepository] : whole-store save and load in a single transaction
//   - [SlotRepository] : the session.Slot over the kv_slots table
//
// Lists, items and comments carry a position column recording insertion order, which the store's
// stable sorts depend on. No foreign keys are declared; orphans are dropped when a snapshot is restored.
package repositories
