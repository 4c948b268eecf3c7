package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
)

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Generate a mesh topology file.",
	Long: `topology writes the description of a width x height mesh into a ` +
		`.yaml or .json file. The file can be edited and fed back into ` +
		`run with --topology.`,
	Run: func(cmd *cobra.Command, _ []string) {
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		output, _ := cmd.Flags().GetString("output")

		network := noc.GenerateMesh(noc.MeshConfig{
			Name:        "Mesh",
			Width:       width,
			Height:      height,
			WithIPCores: true,
		}, protocol.NewBasicProtocol())

		err := noc.WriteTopology(noc.Describe(network), output)
		if err != nil {
			log.Fatalf("cannot write topology: %v", err)
		}

		fmt.Printf("topology written to %s\n", output)
	},
}

func init() {
	rootCmd.AddCommand(topologyCmd)

	topologyCmd.Flags().Int("width", 2, "mesh width")
	topologyCmd.Flags().Int("height", 2, "mesh height")
	topologyCmd.Flags().String("output", "topology.yaml",
		"output file (.yaml or .json)")
}
