package describe

import "fmt"

// ModeDocker is the only execution mode emitted in task documents.
const ModeDocker = "docker"

// Document is the rendered, JSON-serializable form of a Description.
type Document struct {
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Mode          string      `json:"mode"`
	ContainerArgs []string    `json:"container_args"`
	DockerImage   string      `json:"docker_image"`
	PullImage     bool        `json:"pull_image"`
	Inputs        []InputDoc  `json:"inputs"`
	Outputs       []OutputDoc `json:"outputs"`
}

// InputDoc is one rendered input. Capabilities are dropped.
type InputDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Type        Kind     `json:"type"`
	Target      string   `json:"target,omitempty"`
	Default     *Data    `json:"default,omitempty"`
	Values      []any    `json:"values,omitempty"`
	Format      string   `json:"format,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Strip       bool     `json:"strip,omitempty"`
	Lower       bool     `json:"lower,omitempty"`
	Upper       bool     `json:"upper,omitempty"`
}

// OutputDoc is one rendered output. The serializer is dropped.
type OutputDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        Kind   `json:"type"`
	Target      string `json:"target,omitempty"`
}

// Data is the envelope schedulers expect around literal values.
type Data struct {
	Data any `json:"data"`
}

// ContainerArgs returns the argument template for taskID: the task id,
// then one --id=$input{id} per input and one --id=$output{id} per output,
// in declaration order.
func (d *Description) ContainerArgs(taskID string) []string {
	args := make([]string, 0, 1+len(d.inputs)+len(d.outputs))
	args = append(args, taskID)
	for _, in := range d.inputs {
		args = append(args, fmt.Sprintf("--%s=$input{%s}", in.ID, in.ID))
	}
	for _, out := range d.outputs {
		args = append(args, fmt.Sprintf("--%s=$output{%s}", out.ID, out.ID))
	}
	return args
}

// Render produces the task document for taskID. It never mutates d, and two
// calls produce equal documents.
func (d *Description) Render(taskID string, pullImage bool) Document {
	doc := Document{
		Name:          d.name,
		Description:   d.summary,
		Mode:          ModeDocker,
		ContainerArgs: d.ContainerArgs(taskID),
		DockerImage:   d.image,
		PullImage:     pullImage,
		Inputs:        make([]InputDoc, 0, len(d.inputs)),
		Outputs:       make([]OutputDoc, 0, len(d.outputs)),
	}

	for _, in := range d.inputs {
		item := InputDoc{
			ID:          in.ID,
			Name:        in.Name,
			Description: in.Description,
			Required:    in.Required,
			Type:        in.Kind,
			Format:      in.Format,
			Min:         copyFloat(in.Min),
			Max:         copyFloat(in.Max),
			Step:        copyFloat(in.Step),
			Strip:       in.Strip,
			Lower:       in.Lower,
			Upper:       in.Upper,
		}
		if in.Kind == KindFile {
			item.Target = TargetFilepath
		}
		if in.HasDefault {
			item.Default = &Data{Data: in.Default}
		}
		if len(in.Values) > 0 {
			item.Values = append([]any(nil), in.Values...)
		}
		doc.Inputs = append(doc.Inputs, item)
	}

	for _, out := range d.outputs {
		item := OutputDoc{
			ID:          out.ID,
			Name:        out.Name,
			Description: out.Description,
			Type:        out.Kind,
		}
		if out.Kind == KindNewFile {
			item.Target = TargetFilepath
		}
		doc.Outputs = append(doc.Outputs, item)
	}

	return doc
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
