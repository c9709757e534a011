// Package main implements the bank executable.
package main

import (
	"os"

	"github.com/d-kuro/bank/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
