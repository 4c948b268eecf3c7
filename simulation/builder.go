package simulation

import (
	"io"
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/noctlm/datarecording"
	"github.com/sarchlab/noctlm/monitoring"
	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
	"github.com/sarchlab/noctlm/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	network        *noc.Network
	routerCfg      tlm.RouterConfig
	channelCfg     tlm.ChannelConfig
	ipcoreCfg      tlm.IPCoreConfig
	maxTime        sim.VTime
	monitorOn      bool
	monitorPort    int
	recordingOn    bool
	outputFileName string
	logWriter      io.Writer
}

// MakeBuilder creates a new builder with the stock configuration.
func MakeBuilder() Builder {
	return Builder{
		routerCfg:   tlm.DefaultRouterConfig(),
		ipcoreCfg:   tlm.DefaultIPCoreConfig(),
		monitorOn:   true,
		recordingOn: true,
	}
}

// WithNetwork sets the network to simulate.
func (b Builder) WithNetwork(network *noc.Network) Builder {
	b.network = network
	return b
}

// WithRouterConfig sets the configuration shared by all routers.
func (b Builder) WithRouterConfig(cfg tlm.RouterConfig) Builder {
	b.routerCfg = cfg
	return b
}

// WithChannelConfig sets the configuration shared by all channels.
func (b Builder) WithChannelConfig(cfg tlm.ChannelConfig) Builder {
	b.channelCfg = cfg
	return b
}

// WithIPCoreConfig sets the configuration shared by all ipcores.
func (b Builder) WithIPCoreConfig(cfg tlm.IPCoreConfig) Builder {
	b.ipcoreCfg = cfg
	return b
}

// WithMaxTime bounds the simulated time. Zero means unbounded.
func (b Builder) WithMaxTime(t sim.VTime) Builder {
	b.maxTime = t
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording disables the SQLite result database and the packet
// tracer that writes into it.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithLogWriter directs the endpoint transaction log to the given writer.
// Without it the endpoints stay silent.
func (b Builder) WithLogWriter(w io.Writer) Builder {
	b.logWriter = w
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.network == nil {
		panic("simulation builder needs a network")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:                xid.New().String(),
		network:           b.network,
		endpointNameIndex: make(map[string]int),
	}

	s.engine = sim.NewSerialEngine()
	if b.maxTime > 0 {
		s.engine.SetMaxTime(b.maxTime)
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "noctlm_sim_" + s.id
		}
		s.dataRecorder = datarecording.New(outputPath)
		s.visTracer = tracing.NewDBTracer(s.engine, s.dataRecorder)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	systemBuilder := tlm.MakeSystemBuilder().
		WithEngine(s.engine).
		WithNetwork(b.network).
		WithRouterConfig(b.routerCfg).
		WithChannelConfig(b.channelCfg).
		WithIPCoreConfig(b.ipcoreCfg)

	if b.logWriter != nil {
		systemBuilder = systemBuilder.WithLogger(
			log.New(b.logWriter, "", 0))
	}

	s.system = systemBuilder.Build()

	for _, e := range s.system.Endpoints() {
		s.RegisterEndpoint(e)
	}

	return s
}
