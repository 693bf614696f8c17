package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arl/go-cavemesh/cavemesh"
)

var pathMinHeightVal float32

// pathCmd represents the path command.
var pathCmd = &cobra.Command{
	Use:   "path NAVMESH START END",
	Short: "find a path between two vertex indices",
	Long: `Load a navmesh and run a full hierarchical path query between
START and END, given as level-0 vertex indices. Prints the high-level
(zone/entrance) path followed by the low-level (vertex) path.`,
	Args: cobra.ExactArgs(3),
	Run:  doPath,
}

func init() {
	RootCmd.AddCommand(pathCmd)

	pathCmd.Flags().Float32Var(&pathMinHeightVal, "min-height", 0, "minimum clearance a traversed node must have")
}

func doPath(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	check(err)
	defer f.Close()

	nm, err := cavemesh.Load(f)
	check(err)

	start, err := strconv.Atoi(args[1])
	check(err)
	end, err := strconv.Atoi(args[2])
	check(err)

	high, low, err := nm.FindFullPath(
		cavemesh.NodeRef{Index: int32(start)},
		cavemesh.NodeRef{Index: int32(end)},
		cavemesh.QueryOptions{MinHeight: pathMinHeightVal},
	)
	if err != nil {
		fmt.Println("no path:", err)
		os.Exit(-1)
	}

	fmt.Printf("high-level path (%d nodes):\n", len(high))
	for _, n := range high {
		fmt.Printf("  %v\n", n.Pos)
	}
	fmt.Printf("low-level path (%d nodes):\n", len(low))
	for _, n := range low {
		fmt.Printf("  %v\n", n.Pos)
	}
}
