package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "cavemesh",
	Short: "build and query hierarchical navigation meshes",
	Long: `This is the command-line application accompanying go-cavemesh:
	- build a hierarchical navmesh from input geometry (OBJ),
	- save it to a binary file,
	- tweak build settings via YAML files,
	- query paths, or inspect a built navmesh's stats.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
