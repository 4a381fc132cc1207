package catalog

import (
	"errors"
	"time"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"

	"github.com/jonwraymond/sciencedock/task"
)

// DefaultNamespace is the tool namespace used when Options.Namespace is empty.
const DefaultNamespace = "sciencedock"

// Errors returned by the catalog.
var (
	ErrRegistryRequired = errors.New("catalog: Registry is required")
	ErrToolNotFound     = errors.New("tool not found")
)

// Options configures a Catalog.
type Options struct {
	// Namespace groups the tools of one registry.
	// Default: DefaultNamespace
	Namespace string

	// Index receives one tool per task.
	// Default: an in-memory index with a BM25 searcher
	Index index.Index

	// Docs stores per-tool documentation. Entries are only registered when
	// the store accepts them, as tooldoc.InMemoryStore does.
	// Default: an in-memory store backed by Index
	Docs tooldoc.Store

	// Timeout bounds each Execute call. Zero means no limit.
	Timeout time.Duration

	// Logger traces catalog operations and task invocations.
	// Optional.
	Logger task.Logger
}

// validate checks field values.
func (o *Options) validate() error {
	if o.Timeout < 0 {
		return errors.New("catalog: Timeout must not be negative")
	}
	return nil
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.Index == nil {
		o.Index = index.NewInMemoryIndex(index.IndexOptions{
			Searcher: search.NewBM25Searcher(search.BM25Config{}),
		})
	}
	if o.Docs == nil {
		o.Docs = tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: o.Index})
	}
}
