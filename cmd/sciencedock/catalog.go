package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/sciencedock/catalog"
	"github.com/jonwraymond/sciencedock/observability"
	"github.com/jonwraymond/sciencedock/registry"
	"github.com/jonwraymond/sciencedock/table"
)

var (
	configPath  string
	searchLimit int
	fullDoc     bool
	execArgs    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Search, describe, and execute tasks as tools",
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		hits, err := cat.Search(cmd.Context(), strings.Join(args, " "), searchLimit)
		if err != nil {
			return err
		}
		for _, h := range hits {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", h.ID, h.ShortDescription)
		}
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe [tool-id]",
	Short: "Show a tool's documentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		level := tooldoc.DetailSummary
		if fullDoc {
			level = tooldoc.DetailFull
		}
		doc, err := cat.Describe(cmd.Context(), args[0], level)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), doc)
	},
}

var execCmd = &cobra.Command{
	Use:   "exec [tool-id]",
	Short: "Execute a tool with JSON arguments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		toolArgs := map[string]any{}
		if execArgs != "" {
			if err := json.Unmarshal([]byte(execArgs), &toolArgs); err != nil {
				return fmt.Errorf("parse --args: %w", err)
			}
		}
		result, err := cat.Execute(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $SCIENCEDOCK_CONFIG or ./sciencedock.yaml)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	describeCmd.Flags().BoolVar(&fullDoc, "full", false, "include schema and examples")
	execCmd.Flags().StringVar(&execArgs, "args", "", "tool arguments as a JSON object")

	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(searchCmd, describeCmd, execCmd)
}

func openCatalog() (*catalog.Catalog, error) {
	cfg, logger, err := setup(configPath)
	if err != nil {
		return nil, err
	}
	return catalog.New(registry.Default, catalog.Options{
		Namespace: cfg.Catalog.Namespace,
		Timeout:   cfg.Catalog.Timeout,
		Logger:    observability.NewTaskLogger(logger),
	})
}

func printJSON(w io.Writer, v any) error {
	if t, ok := v.(*table.Table); ok {
		return table.EncodeJSON(t, w)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
