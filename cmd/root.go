package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Gurkenlor3nz/vokaba/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "vokaba",
	Short: "Adaptive vocabulary trainer",
	Long:  "Vokaba — terminal vocabulary trainer with adaptive exercise modes and spaced repetition.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VOKABA_DB env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(stacksCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(decayCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VOKABA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the path and opens the database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
