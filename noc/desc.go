package noc

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/noctlm/noc/protocol"
)

// A RouterDesc describes one router in a topology file.
type RouterDesc struct {
	Name    string `json:"name" yaml:"name"`
	Address int    `json:"address" yaml:"address"`
	X       int    `json:"x" yaml:"x"`
	Y       int    `json:"y" yaml:"y"`
	IPCore  bool   `json:"ipcore" yaml:"ipcore"`
}

// A ChannelDesc describes one router-to-router channel in a topology file.
// Endpoints name the two routers it connects. Local ipcore links are implied
// by the router's ipcore flag and never listed.
type ChannelDesc struct {
	Name      string    `json:"name" yaml:"name"`
	Endpoints [2]string `json:"endpoints" yaml:"endpoints"`
}

// A TopologyDesc is the round-trippable file form of a Network.
type TopologyDesc struct {
	Name     string        `json:"name" yaml:"name"`
	Routers  []RouterDesc  `json:"routers" yaml:"routers"`
	Channels []ChannelDesc `json:"channels" yaml:"channels"`
}

// ReadTopology loads a topology description from a YAML or JSON file,
// selected by the file extension.
func ReadTopology(filename string) (TopologyDesc, error) {
	desc := TopologyDesc{}

	bytes, err := os.ReadFile(filename)
	if err != nil {
		return desc, err
	}

	switch path.Ext(filename) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &desc)
	case ".json":
		err = json.Unmarshal(bytes, &desc)
	default:
		err = fmt.Errorf("topology file %s must be .yaml, .yml, or .json",
			filename)
	}

	return desc, err
}

// WriteTopology stores a topology description in the file whose name is
// given. Serialization to YAML or JSON is selected by the file extension.
func WriteTopology(desc TopologyDesc, filename string) error {
	var bytes []byte
	var err error

	switch path.Ext(filename) {
	case ".yaml", ".yml":
		bytes, err = yaml.Marshal(desc)
	case ".json":
		bytes, err = json.MarshalIndent(desc, "", "\t")
	default:
		err = fmt.Errorf("topology file %s must be .yaml, .yml, or .json",
			filename)
	}

	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}

// Describe converts a network back into its file form.
func Describe(n *Network) TopologyDesc {
	desc := TopologyDesc{Name: n.Name}

	for _, r := range n.Routers() {
		desc.Routers = append(desc.Routers, RouterDesc{
			Name:    r.Name,
			Address: r.Address,
			X:       r.X,
			Y:       r.Y,
			IPCore:  r.IPCore >= 0,
		})
	}

	for _, ch := range n.Channels() {
		if ch.Ends[0].Kind != NodeRouter || ch.Ends[1].Kind != NodeRouter {
			continue
		}

		desc.Channels = append(desc.Channels, ChannelDesc{
			Name: ch.Name,
			Endpoints: [2]string{
				n.Router(ch.Ends[0].Router).Name,
				n.Router(ch.Ends[1].Router).Name,
			},
		})
	}

	return desc
}

// Build materializes the description into a network arena.
func (d TopologyDesc) Build(proto *protocol.Protocol) (*Network, error) {
	n := NewNetwork(d.Name, proto)

	byName := make(map[string]RouterID)
	for _, rd := range d.Routers {
		if _, taken := byName[rd.Name]; taken {
			return nil, fmt.Errorf("router %s is listed twice", rd.Name)
		}
		if _, taken := n.RouterByAddress(rd.Address); taken {
			return nil, fmt.Errorf("address %d is listed twice", rd.Address)
		}

		id := n.AddRouter(rd.Name, rd.Address)
		router := n.Router(id)
		router.X = rd.X
		router.Y = rd.Y
		byName[rd.Name] = id

		if rd.IPCore {
			n.AddIPCore(rd.Name+".Core", id)
		}
	}

	for _, cd := range d.Channels {
		a, found := byName[cd.Endpoints[0]]
		if !found {
			return nil, fmt.Errorf("channel %s connects unknown router %s",
				cd.Name, cd.Endpoints[0])
		}

		b, found := byName[cd.Endpoints[1]]
		if !found {
			return nil, fmt.Errorf("channel %s connects unknown router %s",
				cd.Name, cd.Endpoints[1])
		}

		n.AddChannel(cd.Name, a, b)
	}

	return n, nil
}
