// Package models defines the domain types shared by the allocation engine.
//
// # Identifier types
//
// UserID and EntryID are distinct defined types so that identifiers can
// never take part in money arithmetic. Amounts live in the money package
// as their own integer type.
//
// # View models
//
// The *View structs are the snapshot handed to the rendering layer after
// every mutation. They carry plain values only (no pointers back into
// engine state), so a collaborator can hold one across further edits.
package models
