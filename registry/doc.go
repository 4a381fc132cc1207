// Package registry holds the process-wide list of tasks.
//
// Task packages register their tasks from init, so the registry is populated
// once at startup and read-only afterwards:
//
//	var Concatenate = task.Must("concatenate", concatenateDesc, concatenate)
//
//	func init() {
//	    registry.MustRegister(Concatenate)
//	}
//
// The discovery entry point and the catalog enumerate [Registry.List], which
// preserves registration order so task documents are dumped deterministically.
package registry
