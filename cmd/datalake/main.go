// Command datalake generates a synthetic investment-platform data lake as CSV files,
// verifies an existing one, and loads it into PostgreSQL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
