package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mosra/magnum-plugins-sub000/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check OpenDDL files against a grammar",
	Long: `Parse each file and check it against the grammar selected with --profile
or --schema. With --watch the files are checked again whenever they change,
until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate files when they change")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

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

	failed := 0
	for _, path := range args {
		if !checkFile(out, p, grammar, path, logger) {
			failed++
		}
	}

	if watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchFiles(ctx, args, logger, func(path string) {
			checkFile(out, p, grammar, path, logger)
		})
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}

// checkFile validates one file and prints the verdict.
func checkFile(out io.Writer, p *palette, g *schema.Grammar, path string, logger *slog.Logger) bool {
	err := validateFile(g, path, logger)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", p.fail("FAIL"), err)
		return false
	}
	fmt.Fprintf(out, "%s %s\n", p.ok("ok"), path)
	return true
}

func validateFile(g *schema.Grammar, path string, logger *slog.Logger) error {
	doc, err := parseFile(g, path, logger)
	if err != nil {
		return err
	}
	if err := g.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
