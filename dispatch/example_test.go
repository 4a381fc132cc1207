package dispatch_test

import (
	"context"
	"fmt"
	"os"

	"github.com/jonwraymond/sciencedock/describe"
	"github.com/jonwraymond/sciencedock/dispatch"
	"github.com/jonwraymond/sciencedock/registry"
	"github.com/jonwraymond/sciencedock/task"
)

func ExampleDispatcher_Run() {
	reg := registry.New()
	reg.MustRegister(task.Must("shout",
		describe.New("Shout", "Upper-cases text.", "example/image").
			Input("text", "Text", "Text to shout", true, describe.KindString, describe.WithUpper()).
			Output("loud", "Loud text", "", describe.KindString),
		func(_ context.Context, args task.Args) (any, error) {
			return args["text"], nil
		}))

	d, err := dispatch.New(reg, dispatch.Options{Stdout: os.Stdout, Stderr: os.Stdout})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = d.Run(context.Background(), []string{"shout", "--text=hello"})
	_ = d.Run(context.Background(), []string{"whisper"})
	// Output:
	// {
	//   "loud": "HELLO"
	// }
	// Task "whisper" not found.
}
