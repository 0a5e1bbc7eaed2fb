// Package ui contains the Bubble Tea program that shows the launcher menu.
// The Model owns one menu.Build at a time and mirrors the tree as a stack of
// levels: entering a container pushes a level, esc pops it.
//
// Message flow:
//   - Key presses are routed through a typed handler registry. Text keys go
//     to the level filter first (input.go), the rest drive navigation.
//   - Entering an unpopulated folder pushes its level straight away with the
//     "(Loading...)" row, claims the node with Build.BeginExpand and runs the
//     listing as a tea.Cmd. The populatedMsg comes back to Update, which is
//     the only place Build.Apply is called, so the tree is only ever touched
//     from the Bubble Tea goroutine.
//   - Choosing a leaf resolves its command ID with Build.Select and hands the
//     action to the command bus, which dispatches it off the UI goroutine and
//     answers with a menu.ActionResult. Success quits the program.
//
// Reload:
//   - A backend.Watcher reports changes to the INI file. The model asks its
//     Reload hook for a new snapshot, destroys the old build and starts again
//     at the new root. Listings still in flight for the old build are
//     dropped by Apply.
package ui
