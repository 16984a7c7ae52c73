// Package models defines domain entities and patch types for the Top 5 lists backend.
//
// The package contains three categories of types:
//
// 1. Entities: records held by the entity store
//   - [Profile] : Public user profile joined onto lists as the author
//   - [List] : Ranked list header with denormalized vote and comment counts
//   - [ListItem] : One ranked entry, 1-based rank, owned by exactly one list
//   - [Vote] and [Comment] : Social interactions attached to a list
//
// 2. Identity: [User] and [Session], held by the session store
//
// 3. Inputs: [CreateListParams], [ListPatch], [ItemPatch], [ProfilePatch]
//
// Patches use [Optional] so that "absent" and "explicitly null" stay distinct:
// an untouched field is left alone, a null field is cleared and a value replaces the current one.
package models
