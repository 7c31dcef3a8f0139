// stz is the CLI for stanza, a grouped key-value configuration store.
package main

import (
	"fmt"
	"os"

	"github.com/stanza-tools/cli/internal/cli"
	"github.com/stanza-tools/cli/internal/ui/style"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		os.Exit(1)
	}
}
