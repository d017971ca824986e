package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/smasher164/dtt/driver"
	"github.com/spf13/cobra"
)

// Version is set with -ldflags when building a release.
var Version string

var rootCmd = &cobra.Command{
	Use:   "dtt",
	Short: "A normalizer and type checker for a small dependently typed calculus.",
	Long: `dtt parses a term, resolves its names, type checks it and prints its
normal form together with its type.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !getFlag(cmd, "version") {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		fmt.Print("dtt ")
		if Version != "" {
			fmt.Print(Version)
		} else if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Print(info.Main.Version)
		} else {
			fmt.Print("(unknown version)")
		}
		fmt.Println()
	},
}

// Execute runs the command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each pipeline stage")
	rootCmd.PersistentFlags().Bool("debruijn", false, "print de Bruijn indices instead of names")
	rootCmd.PersistentFlags().Bool("textual-names", false, "resolve variables by comparing names")
	rootCmd.AddCommand(runCmd, evalCmd, replCmd)
}

// getFlag returns a boolean flag, exiting if it is not defined.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

func getOptions(cmd *cobra.Command) driver.Options {
	return driver.Options{
		TextualNames: getFlag(cmd, "textual-names"),
		DeBruijn:     getFlag(cmd, "debruijn"),
	}
}
