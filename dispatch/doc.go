// Package dispatch implements the discovery entry point shared by every
// sciencedock container.
//
// With no arguments the entry point prints a JSON array holding the document
// of every registered task, which is how a scheduler learns what the image
// can run. With arguments, the first one is a task identifier: the task whose
// document's first container argument matches runs in command-line mode with
// the remaining arguments. An unknown identifier is reported on the
// diagnostic stream.
package dispatch
