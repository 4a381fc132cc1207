// Package describe provides the declarative half of sciencedock: a chainable
// Description that records a task's typed inputs and outputs and renders them
// into the task document consumed by an external docker scheduler.
//
// A Description is built once, typically in a package-level var, and treated
// as read-only afterwards:
//
//	var desc = describe.New("Concatenate", "Concatenates two data tables.", "kitware/pysciencedock").
//	    Input("table1", "The first data table", "", true, describe.KindFile,
//	        describe.WithDeserializer(table.Deserialize)).
//	    Input("table2", "The second data table", "", true, describe.KindFile,
//	        describe.WithDeserializer(table.Deserialize)).
//	    Output("combined", "The combined table", "", describe.KindNewFile,
//	        describe.WithSerializer(table.SerializeCSV))
//
// # Declaration order
//
// Inputs and outputs are kept in declaration order. The order is load-bearing:
// [Description.Render] emits one container argument per input and output in
// that order, and schedulers map template placeholders positionally.
//
// # Errors
//
// Builder methods never fail inline so that declarations can be chained.
// Problems such as duplicate ids or enumerations without values are recorded
// and reported by [Description.Err]; the task package refuses a Description
// whose Err is non-nil.
package describe
