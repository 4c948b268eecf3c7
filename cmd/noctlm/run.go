package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
	"github.com/sarchlab/noctlm/simulation"
	"github.com/sarchlab/noctlm/tracing"
	"github.com/sarchlab/noctlm/traffic"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run random traffic over a network.",
	Long: `run simulates random uniform traffic: every ipcore injects a ` +
		`number of packets to random destinations. The network is either ` +
		`a generated width x height mesh or a topology loaded with ` +
		`--topology.`,
	Run: runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("width", 2, "mesh width")
	runCmd.Flags().Int("height", 2, "mesh height")
	runCmd.Flags().String("topology", "",
		"topology file (.yaml or .json) instead of a generated mesh")

	runCmd.Flags().Int("packets", 16, "packets injected per ipcore")
	runCmd.Flags().Float64("mean-period", 50,
		"average time between injections of one ipcore")
	runCmd.Flags().Float64("max-time", 0,
		"bound on the simulated time, 0 means unbounded")

	runCmd.Flags().Int("fifo-len", 4, "router fifo capacity")
	runCmd.Flags().Float64("routing-delay", 5, "routing decision delay")
	runCmd.Flags().Float64("forward-delay", 2, "fifo-to-wire delay")
	runCmd.Flags().Float64("channel-delay", 0, "wire transmission delay")
	runCmd.Flags().Float64("local-bus-delay", 1, "ipcore local bus delay")

	runCmd.Flags().String("output", "",
		"output database name, empty picks a unique one")
	runCmd.Flags().Bool("no-recording", false,
		"disable the SQLite result database")
	runCmd.Flags().Bool("no-monitor", false, "disable the monitoring server")
	runCmd.Flags().Int("monitor-port", 0, "monitoring server port")
	runCmd.Flags().Bool("open", false,
		"open the monitoring API in a browser")
	runCmd.Flags().String("log", "",
		"write diagnostic records to this file")
	runCmd.Flags().Bool("verbose", false,
		"log every transaction to stderr")
}

func runSimulation(cmd *cobra.Command, _ []string) {
	network := buildNetwork(cmd)

	builder := simulation.MakeBuilder().
		WithNetwork(network).
		WithRouterConfig(routerConfig(cmd)).
		WithChannelConfig(channelConfig(cmd)).
		WithIPCoreConfig(ipcoreConfig(cmd))

	if maxTime, _ := cmd.Flags().GetFloat64("max-time"); maxTime > 0 {
		builder = builder.WithMaxTime(sim.VTime(maxTime))
	}

	if noRecording, _ := cmd.Flags().GetBool("no-recording"); noRecording {
		builder = builder.WithoutRecording()
	} else if output := outputName(cmd); output != "" {
		builder = builder.WithOutputFileName(output)
	}

	monitorOn := true
	if noMonitor, _ := cmd.Flags().GetBool("no-monitor"); noMonitor {
		builder = builder.WithoutMonitoring()
		monitorOn = false
	} else if port := monitorPort(cmd); port > 0 {
		builder = builder.WithMonitorPort(port)
	}

	if logFile := logName(cmd); logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			log.Fatalf("cannot create log file: %v", err)
		}
		defer f.Close()

		builder = builder.WithLogWriter(f)
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		builder = builder.WithLogWriter(os.Stderr)
	}

	s := builder.Build()
	defer s.Terminate()

	if open, _ := cmd.Flags().GetBool("open"); open && monitorOn {
		openMonitor(cmd)
	}

	collector, sources := attachTraffic(cmd, s)
	latency := attachLatencyTracer(s)

	err := s.Run()
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	injected := 0
	for _, src := range sources {
		injected += src.Injected()
	}

	fmt.Printf("simulated time: %.2f\n", s.Engine().CurrentTime())
	fmt.Printf("packets injected: %d\n", injected)
	fmt.Printf("packets delivered: %d\n", collector.Total())
	if latency.TotalCount() > 0 {
		fmt.Printf("average packet latency: %.2f\n", latency.AverageTime())
	}
}

func buildNetwork(cmd *cobra.Command) *noc.Network {
	proto := protocol.NewBasicProtocol()

	topology, _ := cmd.Flags().GetString("topology")
	if topology != "" {
		desc, err := noc.ReadTopology(topology)
		if err != nil {
			log.Fatalf("cannot read topology: %v", err)
		}

		network, err := desc.Build(proto)
		if err != nil {
			log.Fatalf("cannot build topology: %v", err)
		}

		return network
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	return noc.GenerateMesh(noc.MeshConfig{
		Name:        "Mesh",
		Width:       width,
		Height:      height,
		WithIPCores: true,
	}, proto)
}

func routerConfig(cmd *cobra.Command) tlm.RouterConfig {
	fifoLen, _ := cmd.Flags().GetInt("fifo-len")
	routingDelay, _ := cmd.Flags().GetFloat64("routing-delay")
	forwardDelay, _ := cmd.Flags().GetFloat64("forward-delay")

	return tlm.RouterConfig{
		FIFOLen:      fifoLen,
		RoutingDelay: sim.VTime(routingDelay),
		ForwardDelay: sim.VTime(forwardDelay),
	}
}

func channelConfig(cmd *cobra.Command) tlm.ChannelConfig {
	delay, _ := cmd.Flags().GetFloat64("channel-delay")

	return tlm.ChannelConfig{Delay: sim.VTime(delay)}
}

func ipcoreConfig(cmd *cobra.Command) tlm.IPCoreConfig {
	delay, _ := cmd.Flags().GetFloat64("local-bus-delay")

	return tlm.IPCoreConfig{LocalBusDelay: sim.VTime(delay)}
}

func outputName(cmd *cobra.Command) string {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = os.Getenv("NOCTLM_DB")
	}

	return output
}

func logName(cmd *cobra.Command) string {
	logFile, _ := cmd.Flags().GetString("log")
	if logFile == "" {
		logFile = os.Getenv("NOCTLM_LOG")
	}

	return logFile
}

func monitorPort(cmd *cobra.Command) int {
	port, _ := cmd.Flags().GetInt("monitor-port")
	if port == 0 {
		port, _ = strconv.Atoi(os.Getenv("NOCTLM_MONITOR_PORT"))
	}

	return port
}

func openMonitor(cmd *cobra.Command) {
	port := monitorPort(cmd)
	if port == 0 {
		fmt.Fprintln(os.Stderr,
			"--open needs --monitor-port or NOCTLM_MONITOR_PORT")
		return
	}

	url := fmt.Sprintf("http://localhost:%d/api/progress", port)
	if err := browser.OpenURL(url); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open browser: %v\n", err)
	}
}

// attachTraffic puts a random source and a collecting sink on every ipcore.
// The collector terminates the run once all injected packets arrived.
func attachTraffic(
	cmd *cobra.Command,
	s *simulation.Simulation,
) (*traffic.Collector, []*traffic.RandomSource) {
	packets, _ := cmd.Flags().GetInt("packets")
	meanPeriod, _ := cmd.Flags().GetFloat64("mean-period")

	network := s.Network()

	addrs := make([]int, 0, len(network.IPCores()))
	for _, core := range network.IPCores() {
		addrs = append(addrs, network.Router(core.Router).Address)
	}

	if len(addrs) < 2 {
		log.Fatal("random traffic needs at least two ipcores")
	}

	collector := traffic.NewCollector(len(addrs) * packets)
	sources := make([]*traffic.RandomSource, 0, len(addrs))

	for _, addr := range addrs {
		dests := make([]int, 0, len(addrs)-1)
		for _, other := range addrs {
			if other != addr {
				dests = append(dests, other)
			}
		}

		core := s.IPCoreAt(addr)

		source := traffic.NewRandomSource(
			core.Name()+".Random",
			network.Protocol(),
			traffic.RandomSourceConfig{
				Src:        addr,
				Dests:      dests,
				MeanPeriod: sim.VTime(meanPeriod),
				Count:      packets,
			})
		source.Attach(core)
		sources = append(sources, source)

		collector.NewSink().Attach(core)
	}

	return collector, sources
}

// attachLatencyTracer measures injection-to-delivery time across all
// ipcores.
func attachLatencyTracer(
	s *simulation.Simulation,
) *tracing.AverageTimeTracer {
	tracer := tracing.NewAverageTimeTracer(
		s.Engine(), tracing.TaskKindIs("packet"))

	for _, core := range s.System().IPCores {
		tracing.CollectTrace(core, tracer)
	}

	return tracer
}
