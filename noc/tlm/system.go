package tlm

import (
	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/routing"
)

// A System holds the transaction engines of one network: one engine per
// router, channel, and ipcore, fully wired, plus the routing tables the
// routers forward with.
type System struct {
	Network *noc.Network

	Routers  map[noc.RouterID]*RouterEngine
	Channels map[noc.ChannelID]*ChannelEngine
	IPCores  map[noc.IPCoreID]*IPCoreEngine
	Tables   map[noc.RouterID]*routing.Table
}

// Endpoints returns every engine of the system in a deterministic order:
// routers, then channels, then ipcores, each in arena order.
func (s *System) Endpoints() []Endpoint {
	endpoints := make([]Endpoint, 0,
		len(s.Routers)+len(s.Channels)+len(s.IPCores))

	for _, r := range s.Network.Routers() {
		endpoints = append(endpoints, s.Routers[r.ID])
	}
	for _, ch := range s.Network.Channels() {
		endpoints = append(endpoints, s.Channels[ch.ID])
	}
	for _, core := range s.Network.IPCores() {
		endpoints = append(endpoints, s.IPCores[core.ID])
	}

	return endpoints
}

// RouterByAddress finds the router engine with the given address.
func (s *System) RouterByAddress(addr int) (*RouterEngine, bool) {
	desc, found := s.Network.RouterByAddress(addr)
	if !found {
		return nil, false
	}

	return s.Routers[desc.ID], true
}

// IPCoreAt finds the ipcore engine attached to the router with the given
// address.
func (s *System) IPCoreAt(addr int) (*IPCoreEngine, bool) {
	desc, found := s.Network.RouterByAddress(addr)
	if !found || desc.IPCore < 0 {
		return nil, false
	}

	return s.IPCores[desc.IPCore], true
}
