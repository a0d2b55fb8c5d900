// Package editor holds the editing state of one ER diagram.
//
// # Overview
//
// An [Editor] owns the current [model.Diagram] and everything an
// interactive surface needs around it: the [Selection], the armed
// [ToolMode], the modified flag, the file path, the view transform (zoom
// and pan) and a bounded undo/redo [History].
//
// # Mutations
//
// Structural mutations (adding or deleting elements, editing properties,
// attributes or connections, converting a relationship into an associative
// entity, and [Editor.BeginDrag]) record a deep snapshot of the diagram
// before they apply, discard the redo stack and mark the diagram modified.
// The Quiet variants skip the snapshot so a whole drag gesture undoes as
// one step.
//
// Operations on ids that do not exist are no-ops on the diagram. Two guards
// turn a mutation into a complete no-op with no undo step:
//
//   - [Editor.AddConnection] when the relationship already connects to the
//     entity
//   - [Editor.UpdateConnection] when the new target is already connected
//
// [Editor.UpdateEntity] and [Editor.UpdateRelationship] record an undo step
// and set the modified flag even when nothing matches.
//
// # Observers
//
// [Editor.Subscribe] registers a callback that receives a [Change] after
// every applied change, synchronously on the caller's goroutine.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. The terminal editor in
// internal/cli drives it from the bubbletea update loop only.
package editor
