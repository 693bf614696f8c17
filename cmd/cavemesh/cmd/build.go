package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/go-cavemesh/adapter/objadapter"
	"github.com/arl/go-cavemesh/cavemesh"
)

var (
	buildConfigVal    string
	buildInputVal     string
	buildScaleVal     float32
	buildClearanceVal float32
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build OUTFILE",
	Short: "build a hierarchical navigation mesh from input geometry",
	Long: `Build a hierarchical navigation mesh from input geometry in OBJ.
Build process is controlled by the provided build settings. The generated
navmesh is saved to OUTFILE in binary format, readable with 'cavemesh info'
and 'cavemesh path'.`,
	Args: cobra.ExactArgs(1),
	Run:  doBuild,
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildConfigVal, "config", "cavemesh.yml", "build settings")
	buildCmd.Flags().StringVar(&buildInputVal, "input", "", "input geometry OBJ file (required)")
	buildCmd.Flags().Float32Var(&buildScaleVal, "scale", 1, "scale factor applied to input geometry")
	buildCmd.Flags().Float32Var(&buildClearanceVal, "clearance", 10, "uniform clearance value applied to every vertex (no per-vertex clearance file is read)")
}

func doBuild(cmd *cobra.Command, args []string) {
	outfile := args[0]

	if buildInputVal == "" {
		fmt.Println("error, --input is required")
		os.Exit(-1)
	}

	opts := cavemesh.DefaultBuildOptions()
	if err := fileExists(buildConfigVal); err == nil {
		check(unmarshalYAMLFile(buildConfigVal, &opts))
	}

	mesh := objadapter.New(buildInputVal, buildScaleVal)
	verts, err := mesh.Vertices()
	check(err)

	clearances := cavemesh.ConstantClearance{N: len(verts), Value: buildClearanceVal}

	nm, err := cavemesh.New(mesh, clearances, opts)
	check(err)

	f, err := os.Create(outfile)
	check(err)
	defer f.Close()

	check(nm.Save(f))
	fmt.Printf("navmesh written to '%s'\n", outfile)
}
