// Package transform provides table reshaping tasks.
//
// Importing the package registers its tasks with registry.Default:
//
//	import _ "github.com/jonwraymond/sciencedock/tasks/transform"
package transform
