package main

import (
	"errors"
	"fmt"

	"github.com/metcalfc/bcc/internal/book"
	"github.com/metcalfc/bcc/internal/reader"
	"github.com/metcalfc/bcc/internal/state"
	"github.com/spf13/cobra"
)

var freshStart bool

var readCmd = &cobra.Command{
	Use:   "read <slug>",
	Short: "Open the reading companion for a book",
	Long: `Open the reading companion for a book in the library.

Mark scenes as read as you go. The companion remembers where you stopped
and picks up there next time.

Examples:
  bcc read a-christmas-carol
  bcc read a-christmas-carol --fresh
  bcc -d ~/books read a-christmas-carol`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&freshStart, "fresh", false, "Ignore saved reading position")
}

// companion is the state shared by the terminal and desktop front ends.
type companion struct {
	*reader.Session
	slug  string
	store *state.StateStore
}

func newCompanion(b *book.Book, slug string, store *state.StateStore, fresh bool) *companion {
	c := &companion{Session: reader.NewSession(b), slug: slug, store: store}
	if store != nil && !fresh {
		if st, ok := store.Get(slug); ok {
			c.Restore(st)
		}
	}
	return c
}

// save persists the current position. Failures are not fatal to reading.
func (c *companion) save() {
	if c.store != nil {
		_ = c.store.Set(c.slug, c.Save())
	}
}

// restart goes back to the first scene and forgets the saved position.
func (c *companion) restart() {
	c.Restart()
	if c.store != nil {
		_ = c.store.Clear(c.slug)
	}
}

func runRead(cmd *cobra.Command, args []string) error {
	slug := args[0]
	lib := openLibrary()

	b, err := lib.Load(cmd.Context(), slug)
	if errors.Is(err, book.ErrNotFound) {
		return fmt.Errorf("no book %q in %s (try: bcc list)", slug, lib.Dir())
	}
	if err != nil {
		return err
	}
	if len(b.Chunks) == 0 {
		return fmt.Errorf("book %q has no chunks", slug)
	}

	store, err := state.NewStateStore()
	if err != nil {
		// Reading still works, the position just isn't remembered.
		store = nil
	}

	c := newCompanion(b, slug, store, freshStart)
	return runCompanion(c)
}
