package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mosra/magnum-plugins-sub000/openddl"
	"github.com/mosra/magnum-plugins-sub000/schema"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse OpenDDL files and print their structure tree",
	Long: `Parse each file, resolve its references and print every structure with
its name, properties and values. Custom structure keywords come from the
selected profile or schema, or from --structures and --properties.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	grammar, err := loadGrammar()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	p, err := newPalette(out)
	if err != nil {
		return err
	}

	for _, path := range args {
		doc, err := parseFile(grammar, path, logger)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			fmt.Fprintf(out, "%s:\n", path)
		}
		if err := dump(out, doc, p); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// parseFile reads and parses one file. Errors are prefixed with the path.
func parseFile(g *schema.Grammar, path string, logger *slog.Logger) (*openddl.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := g.Parse(src, openddl.WithLogger(logger.With("file", path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("parsed", "file", path, "bytes", len(src))
	return doc, nil
}
