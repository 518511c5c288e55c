package main

import (
	"fmt"
	"strings"

	"github.com/metcalfc/bcc/internal/reader"
	"github.com/spf13/cobra"
)

var (
	extractOutput string
	extractMin    int
	extractTOC    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Dump the chapter text of an EPUB, Markdown or text file",
	Long: `Dump the text of a source file as chapters.json, one entry per
chapter with its title, source file and text. Pages shorter than the
minimum length (title pages, copyright notices) are skipped.

The output is raw material for preparing a book's chunks; it is not
itself a book.

Examples:
  bcc extract carol.epub
  bcc extract carol.epub -o data/a-christmas-carol/chapters.json
  bcc extract carol.epub --toc`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "chapters.json", "Output file")
	extractCmd.Flags().IntVar(&extractMin, "min", reader.MinChapterLength, "Skip chapters shorter than this many characters")
	extractCmd.Flags().BoolVar(&extractTOC, "toc", false, "Print the table of contents instead")
}

func runExtract(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if extractTOC {
		toc, err := reader.TableOfContents(filename)
		if err != nil {
			return err
		}
		for _, e := range toc {
			ch := "-"
			if e.Chapter >= 0 {
				ch = fmt.Sprintf("%d", e.Chapter)
			}
			fmt.Fprintf(out, "%4s  %s%s\n", ch, strings.Repeat("  ", e.Level), e.Title)
		}
		return nil
	}

	chapters, err := reader.ExtractChapters(filename, extractMin)
	if err != nil {
		return fmt.Errorf("extract %s: %w", filename, err)
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters of at least %d characters in %s (supported: %s)",
			extractMin, filename, strings.Join(reader.SupportedFormats(), ", "))
	}

	if err := reader.WriteChapters(extractOutput, chapters); err != nil {
		return fmt.Errorf("write %s: %w", extractOutput, err)
	}

	fmt.Fprintf(out, "✓ Extracted %d chapters to %s\n", len(chapters), extractOutput)
	for i, ch := range chapters {
		fmt.Fprintf(out, "  %3d. %s (%d chars)\n", i+1, ch.Title, len([]rune(ch.Text)))
	}
	return nil
}
