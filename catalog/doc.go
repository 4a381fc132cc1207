// Package catalog exposes registered tasks as discoverable tools.
//
// Every task becomes a model.Tool whose input schema is derived from the
// task's declared inputs. Tools are registered in a tooldiscovery index with
// a local backend named after the task, so callers can search, describe, and
// execute tasks without knowing their Go identifiers:
//
//	cat, err := catalog.New(registry.Default, catalog.Options{})
//	if err != nil {
//	    return err
//	}
//	hits, _ := cat.Search(ctx, "concatenate tables", 5)
//	out, err := cat.Execute(ctx, hits[0].ID, map[string]any{
//	    "table1": "a.csv",
//	    "table2": "b.csv",
//	})
//
// Execution is direct: the task's function is called in-process with the
// given arguments validated the same way as any direct call.
package catalog
