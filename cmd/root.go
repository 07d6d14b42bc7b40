package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sabilabs/sabi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sabi",
	Short: "Adaptive math tutor for secondary school",
	Long:  "Sabi — terminal tutor that tracks mastery per concept and adapts practice to each student.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SABI_DB env var)")
	rootCmd.PersistentFlags().String("student", "", "Student identifier (overrides SABI_STUDENT env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then SABI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveStudent returns the student ID from --student, SABI_STUDENT, or
// the shared-machine default.
func resolveStudent(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("student"); s != "" {
		return s
	}
	if s := os.Getenv("SABI_STUDENT"); s != "" {
		return s
	}
	return "local"
}
