package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

// readInput reads file, or the command input when file is "-".
func readInput(cc *cli.Context, file string) ([]byte, error) {
	if file == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
