// Command dwgrender resolves a decoded drawing dump and renders or inspects
// the result.
package main

import (
	"fmt"
	"os"

	"github.com/dwgkit/dwg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
