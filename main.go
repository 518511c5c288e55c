package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/metcalfc/bcc/internal/book"
	"github.com/spf13/cobra"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// DefaultDataDir is used when neither --data-dir nor the environment names a library.
const DefaultDataDir = "data"

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "bcc",
	Short: "bcc - spoiler-free reading companion",
	Long: `bcc follows along as you read a book and shows only what you have
already read: characters you have met, places you have been, and a recap
of the story so far. Nothing past your position is revealed.

Books live in a library directory, one subdirectory per book holding
meta.json, chunks.json, characters.json and locations.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bcc %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Library directory (default: $BCC_DATA_DIR, $DATA_DIR or ./data)")
	rootCmd.AddCommand(versionCmd)
}

// libraryDir resolves the library root from the flag, then the environment.
func libraryDir() string {
	if dataDir != "" {
		return dataDir
	}
	for _, env := range []string{"BCC_DATA_DIR", "DATA_DIR"} {
		if dir := os.Getenv(env); dir != "" {
			return dir
		}
	}
	return DefaultDataDir
}

func openLibrary() *book.Library {
	return book.NewLibrary(libraryDir())
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
