// Package noc holds the static description of a Network-on-Chip: routers,
// channels, and ipcores, stored in an arena indexed by integer ids.
package noc

import (
	"log"
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/sarchlab/noctlm/noc/protocol"
)

// RouterID identifies a router in the arena that owns it.
type RouterID int

// ChannelID identifies a channel in the arena that owns it.
type ChannelID int

// IPCoreID identifies an ipcore in the arena that owns it.
type IPCoreID int

// NodeKind tells whether a channel endpoint is a router or an ipcore.
type NodeKind int

// The two endpoint kinds a channel can connect.
const (
	NodeRouter NodeKind = iota
	NodeIPCore
)

// A NodeRef points to one channel endpoint. It is an index into the owning
// arena, never an owning pointer, so the arena stays cycle free.
type NodeRef struct {
	Kind   NodeKind
	Router RouterID
	IPCore IPCoreID
}

// A Router describes one router of the network. The address doubles as the
// key of the router's local ipcore port, so no neighbor may share it.
type Router struct {
	ID      RouterID
	Name    string
	Address int
	X, Y    int

	// Channels lists the router-to-router links of this router.
	Channels []ChannelID

	// LocalChannel is the link to the attached ipcore, or -1.
	LocalChannel ChannelID

	// IPCore is the attached compute core, or -1.
	IPCore IPCoreID

	// Attrs holds extension attributes that have no dedicated field.
	Attrs map[string]any
}

// A Channel connects exactly two endpoints. It owns no queue; queueing is
// the business of the entities at its ends.
type Channel struct {
	ID   ChannelID
	Name string
	Ends [2]NodeRef

	Attrs map[string]any
}

// An IPCore describes a compute core attached to exactly one router through
// a dedicated channel.
type IPCore struct {
	ID      IPCoreID
	Name    string
	Router  RouterID
	Channel ChannelID

	Attrs map[string]any
}

// A Network is the arena that owns all routers, channels, and ipcores of one
// NoC, plus the protocol that defines the packet layout on its wires.
type Network struct {
	Name string

	routers  []*Router
	channels []*Channel
	ipcores  []*IPCore

	addressIndex map[int]RouterID

	proto *protocol.Protocol
}

// NewNetwork creates an empty network that moves packets of the given
// protocol.
func NewNetwork(name string, proto *protocol.Protocol) *Network {
	return &Network{
		Name:         name,
		addressIndex: make(map[int]RouterID),
		proto:        proto,
	}
}

// Protocol returns the packet protocol shared by all entities of the
// network.
func (n *Network) Protocol() *protocol.Protocol {
	return n.proto
}

// AddRouter adds a router with the given name and address. Addresses must be
// unique: routers and their neighbors share one address namespace.
func (n *Network) AddRouter(name string, address int) RouterID {
	if _, taken := n.addressIndex[address]; taken {
		log.Panicf("address %d is already taken", address)
	}

	id := RouterID(len(n.routers))
	n.routers = append(n.routers, &Router{
		ID:           id,
		Name:         name,
		Address:      address,
		LocalChannel: -1,
		IPCore:       -1,
	})
	n.addressIndex[address] = id

	return id
}

// AddChannel connects two routers with a channel.
func (n *Network) AddChannel(name string, a, b RouterID) ChannelID {
	ra := n.Router(a)
	rb := n.Router(b)

	if a == b {
		log.Panicf("channel %s must connect two distinct routers", name)
	}

	id := ChannelID(len(n.channels))
	n.channels = append(n.channels, &Channel{
		ID:   id,
		Name: name,
		Ends: [2]NodeRef{
			{Kind: NodeRouter, Router: a, IPCore: -1},
			{Kind: NodeRouter, Router: b, IPCore: -1},
		},
	})

	ra.Channels = append(ra.Channels, id)
	rb.Channels = append(rb.Channels, id)

	return id
}

// AddIPCore attaches a compute core to a router, creating the local channel
// between them. A router carries at most one ipcore.
func (n *Network) AddIPCore(name string, r RouterID) IPCoreID {
	router := n.Router(r)
	if router.IPCore >= 0 {
		log.Panicf("router %s already has an ipcore", router.Name)
	}

	coreID := IPCoreID(len(n.ipcores))
	chID := ChannelID(len(n.channels))

	n.channels = append(n.channels, &Channel{
		ID:   chID,
		Name: name + ".Link",
		Ends: [2]NodeRef{
			{Kind: NodeRouter, Router: r, IPCore: -1},
			{Kind: NodeIPCore, Router: -1, IPCore: coreID},
		},
	})
	n.ipcores = append(n.ipcores, &IPCore{
		ID:      coreID,
		Name:    name,
		Router:  r,
		Channel: chID,
	})

	router.IPCore = coreID
	router.LocalChannel = chID

	return coreID
}

// Router returns the router with the given id.
func (n *Network) Router(id RouterID) *Router {
	if id < 0 || int(id) >= len(n.routers) {
		log.Panicf("router id %d is out of range", id)
	}

	return n.routers[id]
}

// Channel returns the channel with the given id.
func (n *Network) Channel(id ChannelID) *Channel {
	if id < 0 || int(id) >= len(n.channels) {
		log.Panicf("channel id %d is out of range", id)
	}

	return n.channels[id]
}

// IPCore returns the ipcore with the given id.
func (n *Network) IPCore(id IPCoreID) *IPCore {
	if id < 0 || int(id) >= len(n.ipcores) {
		log.Panicf("ipcore id %d is out of range", id)
	}

	return n.ipcores[id]
}

// Routers returns all routers in creation order.
func (n *Network) Routers() []*Router {
	return n.routers
}

// Channels returns all channels in creation order, local ipcore links
// included.
func (n *Network) Channels() []*Channel {
	return n.channels
}

// IPCores returns all ipcores in creation order.
func (n *Network) IPCores() []*IPCore {
	return n.ipcores
}

// RouterByAddress finds the router with the given address.
func (n *Network) RouterByAddress(addr int) (*Router, bool) {
	id, found := n.addressIndex[addr]
	if !found {
		return nil, false
	}

	return n.routers[id], true
}

// Neighbors returns the routers adjacent to the given router, sorted by
// address. The sorted order keeps every traversal of the topology
// deterministic.
func (n *Network) Neighbors(id RouterID) []RouterID {
	router := n.Router(id)

	neighbors := make([]RouterID, 0, len(router.Channels))
	for _, chID := range router.Channels {
		neighbors = append(neighbors, n.oppositeRouter(chID, id))
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return n.routers[neighbors[i]].Address < n.routers[neighbors[j]].Address
	})

	return neighbors
}

// ChannelBetween finds the router-to-router channel connecting a and b.
func (n *Network) ChannelBetween(a, b RouterID) (ChannelID, bool) {
	for _, chID := range n.Router(a).Channels {
		if n.oppositeRouter(chID, a) == b {
			return chID, true
		}
	}

	return -1, false
}

func (n *Network) oppositeRouter(chID ChannelID, id RouterID) RouterID {
	ch := n.Channel(chID)

	if ch.Ends[0].Kind == NodeRouter && ch.Ends[0].Router == id {
		return ch.Ends[1].Router
	}

	return ch.Ends[0].Router
}

// Graph materializes the router adjacency as a gonum undirected graph. Node
// ids are router addresses. The routing table builder consumes it; it must
// be rebuilt after any topology mutation.
func (n *Network) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()

	for _, r := range n.routers {
		g.AddNode(simple.Node(r.Address))
	}

	for _, ch := range n.channels {
		if ch.Ends[0].Kind != NodeRouter || ch.Ends[1].Kind != NodeRouter {
			continue
		}

		a := n.routers[ch.Ends[0].Router].Address
		b := n.routers[ch.Ends[1].Router].Address
		g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}

	return g
}
