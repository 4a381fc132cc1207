package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/sciencedock/registry"
)

// Catalog indexes the tasks of a registry for search, documentation, and
// execution.
type Catalog struct {
	backend *Backend
	index   index.Index
	docs    tooldoc.Store
	opts    Options
}

type docRegistrar interface {
	RegisterDoc(id string, entry tooldoc.DocEntry) error
}

// New indexes every task in reg. Tasks registered after New are not seen.
func New(reg *registry.Registry, opts Options) (*Catalog, error) {
	if reg == nil {
		return nil, ErrRegistryRequired
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	b := NewBackend(opts.Namespace, reg)
	b.logger = opts.Logger
	c := &Catalog{backend: b, index: opts.Index, docs: opts.Docs, opts: opts}

	tools, err := b.ListTools(context.Background())
	if err != nil {
		return nil, err
	}
	store, canDocument := opts.Docs.(docRegistrar)
	for _, tool := range tools {
		if err := c.index.RegisterTool(tool, model.NewLocalBackend(tool.Name)); err != nil {
			return nil, fmt.Errorf("catalog: register %s: %w", tool.Name, err)
		}
		if !canDocument {
			continue
		}
		t, _ := reg.Get(tool.Name)
		doc := t.Describe()
		entry := tooldoc.DocEntry{
			Summary: tool.Description,
			Notes: fmt.Sprintf("Runs in container image %s as %q. Parameters: %s.",
				doc.DockerImage, strings.Join(doc.ContainerArgs, " "), keywords(t.Description())),
		}
		if args := exampleArgs(t.Description()); len(args) > 0 {
			entry.Examples = []tooldoc.ToolExample{{Title: "Defaults", Args: args}}
		}
		if err := store.RegisterDoc(c.toolID(tool.Name), entry); err != nil {
			return nil, fmt.Errorf("catalog: document %s: %w", tool.Name, err)
		}
	}
	c.logf("catalog: indexed %d task(s) in namespace %s", len(tools), opts.Namespace)
	return c, nil
}

// Namespace returns the namespace every tool of the catalog lives in.
func (c *Catalog) Namespace() string {
	return c.opts.Namespace
}

// Backend returns the backend executing the catalog's tools.
func (c *Catalog) Backend() *Backend {
	return c.backend
}

// Index returns the underlying tool index.
func (c *Catalog) Index() index.Index {
	return c.index
}

// Search finds tools matching query.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]index.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.index.Search(query, limit)
}

// ListNamespaces returns the namespaces known to the index.
func (c *Catalog) ListNamespaces(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.index.ListNamespaces()
}

// Describe returns the documentation of toolID at level.
func (c *Catalog) Describe(ctx context.Context, toolID string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	if err := ctx.Err(); err != nil {
		return tooldoc.ToolDoc{}, err
	}
	return c.docs.DescribeTool(toolID, level)
}

// Execute runs the task behind toolID with args. toolID is either
// "namespace:name" or a bare task name.
func (c *Catalog) Execute(ctx context.Context, toolID string, args map[string]any) (any, error) {
	name, err := c.taskName(toolID)
	if err != nil {
		return nil, err
	}
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}
	c.logf("catalog: executing %s", toolID)
	return c.backend.Execute(ctx, name, args)
}

func (c *Catalog) toolID(name string) string {
	return c.opts.Namespace + ":" + name
}

func (c *Catalog) taskName(toolID string) (string, error) {
	ns, name, ok := strings.Cut(toolID, ":")
	if !ok {
		return toolID, nil
	}
	if ns != c.opts.Namespace {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, toolID)
	}
	return name, nil
}

func (c *Catalog) logf(format string, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Logf(format, args...)
	}
}
