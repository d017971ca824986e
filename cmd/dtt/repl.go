package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smasher164/dtt/driver"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate terms interactively, one per line.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			scanLines(os.Stdin, os.Stdout, opts)
			return
		}
		state, err := term.MakeRaw(fd)
		if err != nil {
			errExit(err)
		}
		defer term.Restore(fd, state)
		screen := struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}
		t := term.NewTerminal(screen, "> ")
		for {
			line, err := t.ReadLine()
			if errors.Is(err, io.EOF) {
				return
			} else if err != nil {
				fmt.Fprintln(t, err)
				return
			}
			evalLine(t, line, opts)
		}
	},
}

func scanLines(r io.Reader, w io.Writer, opts driver.Options) {
	input := bufio.NewScanner(r)
	for input.Scan() {
		evalLine(w, input.Text(), opts)
	}
	if err := input.Err(); err != nil {
		errExit(err)
	}
}

func evalLine(w io.Writer, line string, opts driver.Options) {
	if strings.TrimSpace(line) == "" {
		return
	}
	report(w, "<stdin>", line, opts)
}
