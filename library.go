package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/bcc/internal/book"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := openLibrary()
		books, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No books found in %s\n", lib.Dir())
			return nil
		}
		printBooks(cmd.OutOrStdout(), books)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [slug...]",
	Short: "Check book data for broken references",
	Long: `Check that every chunk, character and location in a book refers to
things that exist, that descriptions start at real chunks and that
progress never goes backwards.

With no arguments every book in the library is checked. The command
exits non-zero when any issue is found.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
}

func printBooks(w io.Writer, books []book.Meta) {
	var (
		headerColor = lipgloss.Color("#F780FF")
		slugColor   = lipgloss.Color("#BD93F9")
		titleColor  = lipgloss.Color("#E9E9F4")
		authorColor = lipgloss.Color("#8BE9FD")
		borderColor = lipgloss.Color("#6272A4")
	)

	const (
		slugWidth   = 28
		titleWidth  = 36
		authorWidth = 24
	)

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true).Padding(0, 1)
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	slugStyle := lipgloss.NewStyle().Foreground(slugColor).Padding(0, 1).Width(slugWidth)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Padding(0, 1).Width(titleWidth)
	authorStyle := lipgloss.NewStyle().Foreground(authorColor).Padding(0, 1).Width(authorWidth)

	headers := []string{
		headerStyle.Width(slugWidth).Render("SLUG"),
		headerStyle.Width(titleWidth).Render("TITLE"),
		headerStyle.Width(authorWidth).Render("AUTHOR"),
	}
	fmt.Fprintln(w, strings.Join(headers, borderStyle.Render("│")))
	fmt.Fprintln(w, borderStyle.Render(strings.Join([]string{
		strings.Repeat("─", slugWidth),
		strings.Repeat("─", titleWidth),
		strings.Repeat("─", authorWidth),
	}, "┼")))

	for _, m := range books {
		cells := []string{
			slugStyle.Render(m.Slug),
			titleStyle.Render(m.Title),
			authorStyle.Render(m.Author),
		}
		fmt.Fprintln(w, strings.Join(cells, borderStyle.Render("│")))
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	lib := openLibrary()
	out := cmd.OutOrStdout()

	slugs := args
	if len(slugs) == 0 {
		books, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range books {
			slugs = append(slugs, m.Slug)
		}
	}

	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true)
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)

	total := 0
	for _, slug := range slugs {
		b, err := lib.Load(cmd.Context(), slug)
		if err != nil {
			return fmt.Errorf("load %s: %w", slug, err)
		}

		issues := book.Validate(b)
		if len(issues) == 0 {
			fmt.Fprintf(out, "%s %s: %d chunks, %d characters, %d locations\n",
				okStyle.Render("✓"), slug, len(b.Chunks), b.Characters.Meta.Len(), b.Locations.Meta.Len())
			continue
		}

		fmt.Fprintf(out, "%s %s: %d issue(s)\n", badStyle.Render("✗"), slug, len(issues))
		for _, issue := range issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
		total += len(issues)
	}

	if total > 0 {
		return fmt.Errorf("validation found %d issue(s)", total)
	}
	return nil
}
