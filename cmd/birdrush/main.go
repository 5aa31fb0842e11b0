// birdrush is a terminal flappy-style arcade game with three modes.
//
// Usage:
//
//	birdrush list              - List available game modes
//	birdrush play <mode>       - Play a mode
//	birdrush menu              - Start the interactive mode picker
//	birdrush serve             - Start SSH server for remote play
//	birdrush api               - Start the REST API server
//	birdrush scores <mode>     - Show high scores for a mode
//	birdrush simulate <mode>   - Run a headless simulation
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.birdrush/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "birdrush",
	Short: "birdrush - Flappy-style arcade in your terminal",
	Long: `birdrush is a terminal arcade game: steer a bird through scrolling
hazards with a single key, in three rule sets.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  api      - Start the REST scores/metrics server
  scores   - View high scores
  simulate - Run a headless simulation tick loop

Examples:
  birdrush list
  birdrush play classic
  birdrush play survival --difficulty hard
  birdrush menu
  birdrush serve --ssh :2222
  birdrush scores powerups`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.birdrush/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
