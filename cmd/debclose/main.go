// Command debclose assembles a complete, offline-installable set of
// Debian binary packages for one target architecture, starting from a
// set of user-named top-level packages and a directory of pre-downloaded
// Packages index files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "debclose",
		Short:         "Resolve and fetch the transitive closure of Debian package dependencies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "debclose.toml", "optional TOML file supplying defaults for base-url/packages/index-dir/out-dir")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose trace logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newExplainCmd())

	return root
}
