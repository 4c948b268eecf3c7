package noc

import (
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/sim"
)

// MeshConfig controls the square-mesh generator.
type MeshConfig struct {
	Name        string
	Width       int
	Height      int
	WithIPCores bool
}

// GenerateMesh builds a width x height grid of routers. The router at grid
// position (x, y) gets address x + y*width. Each router optionally carries
// one ipcore. Channels connect horizontal and vertical grid neighbors.
func GenerateMesh(cfg MeshConfig, proto *protocol.Protocol) *Network {
	name := cfg.Name
	if name == "" {
		name = "Mesh"
	}
	sim.NameMustBeValid(name)

	n := NewNetwork(name, proto)

	ids := make([][]RouterID, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		ids[y] = make([]RouterID, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			addr := x + y*cfg.Width
			id := n.AddRouter(
				sim.BuildNameWithIndex(name, "Router", addr), addr)
			router := n.Router(id)
			router.X = x
			router.Y = y
			ids[y][x] = id

			if cfg.WithIPCores {
				n.AddIPCore(
					sim.BuildNameWithIndex(name, "IPCore", addr), id)
			}
		}
	}

	channelIdx := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if x+1 < cfg.Width {
				n.AddChannel(
					sim.BuildNameWithIndex(name, "Channel", channelIdx),
					ids[y][x], ids[y][x+1])
				channelIdx++
			}
			if y+1 < cfg.Height {
				n.AddChannel(
					sim.BuildNameWithIndex(name, "Channel", channelIdx),
					ids[y][x], ids[y+1][x])
				channelIdx++
			}
		}
	}

	return n
}
