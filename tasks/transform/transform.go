package transform

import (
	"context"
	"fmt"

	"github.com/jonwraymond/sciencedock/describe"
	"github.com/jonwraymond/sciencedock/registry"
	"github.com/jonwraymond/sciencedock/table"
	"github.com/jonwraymond/sciencedock/task"
)

// DockerImage is the container image the transform tasks run in.
const DockerImage = "kitware/pysciencedock"

// Concatenate stacks the rows of two tables.
var Concatenate = task.Must("concatenate",
	describe.New("Concatenate", "Concatenates two data tables.", DockerImage).
		Input("table1", "The first data table", "", true, describe.KindFile,
			describe.WithDeserializer(table.Deserialize)).
		Input("table2", "The second data table", "", true, describe.KindFile,
			describe.WithDeserializer(table.Deserialize)).
		Output("combined", "The combined table", "", describe.KindNewFile,
			describe.WithSerializer(table.SerializeCSV)),
	concatenate,
)

// CSVToJSON converts a table to a JSON array of row objects.
var CSVToJSON = task.Must("csv_to_json",
	describe.New("CSV to JSON", "Converts a CSV table to an array of objects in JSON format.", DockerImage).
		Input("data", "The CSV data table", "", true, describe.KindFile,
			describe.WithDeserializer(table.Deserialize)).
		Output("output", "The converted JSON table", "", describe.KindNewFile,
			describe.WithSerializer(table.SerializeJSON)),
	csvToJSON,
)

func init() {
	registry.MustRegister(Concatenate, CSVToJSON)
}

func concatenate(_ context.Context, args task.Args) (any, error) {
	a, err := tableArg(args, "table1")
	if err != nil {
		return nil, err
	}
	b, err := tableArg(args, "table2")
	if err != nil {
		return nil, err
	}
	return table.Concat(a, b), nil
}

func csvToJSON(_ context.Context, args task.Args) (any, error) {
	return tableArg(args, "data")
}

// tableArg returns args[id] as a table. Direct callers may pass a path, which
// is read the same way the command line reads it.
func tableArg(args task.Args, id string) (*table.Table, error) {
	switch v := args[id].(type) {
	case *table.Table:
		return v, nil
	case string:
		return table.Read(v)
	default:
		return nil, fmt.Errorf("%s: expected a table or a path, got %T", id, v)
	}
}
