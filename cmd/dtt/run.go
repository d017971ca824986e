package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/driver"
	"github.com/smasher164/dtt/parse"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file...",
	Short: "Evaluate programs read from files.",
	Long:  `Evaluate each file as a single term. A file named "-" is read from standard input.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		ok := true
		for _, name := range args {
			src, err := readFile(name)
			if err != nil {
				errExit(err)
			}
			log.Debugf("running %s", name)
			ok = report(os.Stdout, name, src, opts) && ok
		}
		if !ok {
			os.Exit(1)
		}
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval [flags] term",
	Short: "Evaluate a term given on the command line.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !report(os.Stdout, "<arg>", strings.Join(args, " "), getOptions(cmd)) {
			os.Exit(1)
		}
	},
}

func readFile(name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

func errExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// report runs src and writes either its result or its error to w. It
// returns false on error.
func report(w io.Writer, name, src string, opts driver.Options) bool {
	res, err := driver.Run(src, opts)
	if err == nil {
		fmt.Fprintln(w, res)
		return true
	}
	var perr *parse.Error
	switch {
	case errors.As(err, &perr):
		printSyntaxError(w, name, perr, src)
	case errors.Is(err, core.ErrInternal):
		fmt.Fprintf(w, "%s: %v (this is a bug)\n", name, err)
	default:
		fmt.Fprintf(w, "%s: type error: %v\n", name, err)
	}
	return false
}

// printSyntaxError prints the offending line with a caret under the error.
func printSyntaxError(w io.Writer, name string, e *parse.Error, src string) {
	fmt.Fprintf(w, "%s:%s: %s\n", name, e.Pos, e.Msg)
	lines := strings.Split(src, "\n")
	if e.Pos.Line-1 >= len(lines) {
		return
	}
	fmt.Fprintln(w, lines[e.Pos.Line-1])
	fmt.Fprintln(w, strings.Repeat(" ", e.Pos.Column-1)+"^")
}
