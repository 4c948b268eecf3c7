package tlm

import (
	"log"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/routing"
	"github.com/sarchlab/noctlm/sim"
)

// SystemBuilder builds the transaction engines for a network.
type SystemBuilder struct {
	engine     sim.Engine
	network    *noc.Network
	routerCfg  RouterConfig
	channelCfg ChannelConfig
	ipcoreCfg  IPCoreConfig
	logger     *log.Logger
}

// MakeSystemBuilder creates a builder with the stock configuration.
func MakeSystemBuilder() SystemBuilder {
	return SystemBuilder{
		routerCfg: DefaultRouterConfig(),
		ipcoreCfg: DefaultIPCoreConfig(),
	}
}

// WithEngine sets the engine that drives all created entities.
func (b SystemBuilder) WithEngine(engine sim.Engine) SystemBuilder {
	b.engine = engine
	return b
}

// WithNetwork sets the network arena to build engines for.
func (b SystemBuilder) WithNetwork(network *noc.Network) SystemBuilder {
	b.network = network
	return b
}

// WithRouterConfig sets the configuration shared by all routers.
func (b SystemBuilder) WithRouterConfig(cfg RouterConfig) SystemBuilder {
	b.routerCfg = cfg
	return b
}

// WithChannelConfig sets the configuration shared by all channels.
func (b SystemBuilder) WithChannelConfig(cfg ChannelConfig) SystemBuilder {
	b.channelCfg = cfg
	return b
}

// WithIPCoreConfig sets the configuration shared by all ipcores.
func (b SystemBuilder) WithIPCoreConfig(cfg IPCoreConfig) SystemBuilder {
	b.ipcoreCfg = cfg
	return b
}

// WithLogger sets the diagnostic sink handed to every created entity. A nil
// logger keeps the entities silent.
func (b SystemBuilder) WithLogger(logger *log.Logger) SystemBuilder {
	b.logger = logger
	return b
}

// Build creates and wires one engine per arena entity. Routing tables are
// computed from the topology as it stands; mutate the topology and the
// system must be rebuilt.
func (b SystemBuilder) Build() *System {
	if b.engine == nil {
		log.Panic("system builder needs an engine")
	}

	if b.network == nil {
		log.Panic("system builder needs a network")
	}

	s := &System{
		Network:  b.network,
		Routers:  make(map[noc.RouterID]*RouterEngine),
		Channels: make(map[noc.ChannelID]*ChannelEngine),
		IPCores:  make(map[noc.IPCoreID]*IPCoreEngine),
		Tables:   routing.BuildAllTables(b.network),
	}

	for _, desc := range b.network.Routers() {
		s.Routers[desc.ID] = newRouterEngine(
			b.engine, b.network, desc, b.routerCfg, s.Tables[desc.ID])
	}

	for _, desc := range b.network.Channels() {
		s.Channels[desc.ID] = newChannelEngine(
			b.engine, desc, b.channelCfg)
	}

	for _, desc := range b.network.IPCores() {
		s.IPCores[desc.ID] = newIPCoreEngine(b.engine, desc, b.ipcoreCfg)
	}

	b.wire(s)
	b.attachLogger(s)

	return s
}

func (b SystemBuilder) wire(s *System) {
	for _, desc := range b.network.Channels() {
		ch := s.Channels[desc.ID]
		ch.connect(b.endpointOf(s, desc.Ends[0]), b.endpointOf(s, desc.Ends[1]))
	}

	for _, desc := range b.network.Routers() {
		router := s.Routers[desc.ID]

		for _, chID := range desc.Channels {
			peer := b.oppositeRouter(desc, chID)
			router.addPort(peer.Address, s.Channels[chID])
		}

		if desc.IPCore >= 0 {
			core := s.IPCores[desc.IPCore]
			localch := s.Channels[desc.LocalChannel]
			router.addPort(desc.Address, localch)
			core.connect(localch)
		}

		router.finalizePorts()
	}
}

func (b SystemBuilder) endpointOf(s *System, ref noc.NodeRef) Endpoint {
	if ref.Kind == noc.NodeRouter {
		return s.Routers[ref.Router]
	}

	return s.IPCores[ref.IPCore]
}

func (b SystemBuilder) oppositeRouter(
	desc *noc.Router,
	chID noc.ChannelID,
) *noc.Router {
	ch := b.network.Channel(chID)

	if ch.Ends[0].Kind == noc.NodeRouter && ch.Ends[0].Router == desc.ID {
		return b.network.Router(ch.Ends[1].Router)
	}

	return b.network.Router(ch.Ends[0].Router)
}

func (b SystemBuilder) attachLogger(s *System) {
	if b.logger == nil {
		return
	}

	for _, r := range s.Routers {
		r.SetLogger(b.logger)
	}
	for _, ch := range s.Channels {
		ch.SetLogger(b.logger)
	}
	for _, core := range s.IPCores {
		core.SetLogger(b.logger)
	}
}
