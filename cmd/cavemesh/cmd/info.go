package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/go-cavemesh/cavemesh"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info NAVMESH",
	Short: "show infos about a built navmesh",
	Long: `Read a navigation mesh from its binary file and print summary
statistics: node, zone and entrance counts.`,
	Args: cobra.ExactArgs(1),
	Run:  doInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func doInfo(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	check(err)
	defer f.Close()

	nm, err := cavemesh.Load(f)
	check(err)

	stats := nm.Stats()
	fmt.Printf("level-0 nodes: %d\n", stats.Level0Nodes)
	fmt.Printf("zones:         %d\n", stats.Zones)
	fmt.Printf("entrances:     %d\n", stats.Entrances)
	fmt.Printf("level-1 nodes: %d\n", stats.Level1Nodes)
}
