// Command opctl compiles, inspects, and validates pipeline topology
// configurations.
package main

import (
	"fmt"
	"os"

	"github.com/opmodel/topology/internal/cmdutil"
	"github.com/opmodel/topology/internal/errdetail"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errdetail.Render(err))
		cmdutil.Exit(err)
	}
}
