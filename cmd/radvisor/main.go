//go:build linux

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/radvisor/radvisor/internal/cgroup"
	"github.com/radvisor/radvisor/internal/config"
	"github.com/radvisor/radvisor/internal/csvy"
	"github.com/radvisor/radvisor/internal/engine"
	"github.com/radvisor/radvisor/internal/health"
	"github.com/radvisor/radvisor/internal/humanlog"
	"github.com/radvisor/radvisor/internal/metrics"
	"github.com/radvisor/radvisor/internal/provider"
	"github.com/radvisor/radvisor/internal/sysinfo"
	"github.com/radvisor/radvisor/pkg/types"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	quiet   bool
	verbose bool
	color   string
)

type runOpts struct {
	directory    string
	interval     time.Duration
	poll         time.Duration
	flushLogPath string
	buffer       int
	kubeConfig   string
	healthAddr   string
}

func main() {
	root := &cobra.Command{
		Use:     "radvisor",
		Short:   "Monitors containers/pods and streams per-unit cgroup resource usage to CSVY logs",
		Version: "1.0.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Println(cmd.Version)
				return nil
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolP("version", "V", false, "print the version number and exit")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress startup banners and warnings")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.PersistentFlags().StringVarP(&color, "color", "c", "auto", "colorize output: auto|always|never")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the collection engine against a provider",
	}

	var o runOpts
	addCommonFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&o.directory, "directory", "d", "/var/log/radvisor/stats", "directory to write output log files to")
		cmd.Flags().DurationVarP(&o.interval, "interval", "i", 50*time.Millisecond, "collection interval for resource statistics")
		cmd.Flags().DurationVarP(&o.poll, "poll", "p", 1000*time.Millisecond, "interval to poll the provider for new/removed targets")
		cmd.Flags().StringVarP(&o.flushLogPath, "flush-log", "f", "", "file to log buffer flush events to")
		cmd.Flags().IntVar(&o.buffer, "buffer", 65536, "size in bytes of the internal buffer for each log file")
		cmd.Flags().StringVar(&o.healthAddr, "health-addr", "127.0.0.1:9731", "address to bind the health/metrics HTTP server to")
	}

	dockerCmd := &cobra.Command{
		Use:   "docker",
		Short: "Monitor running Docker containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithProvider(cmd.Context(), o, config.ProviderDocker)
		},
	}
	addCommonFlags(dockerCmd)

	kubernetesCmd := &cobra.Command{
		Use:   "kubernetes",
		Short: "Monitor running Kubernetes pods on this node",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithProvider(cmd.Context(), o, config.ProviderKubernetes)
		},
	}
	addCommonFlags(kubernetesCmd)
	kubernetesCmd.Flags().StringVarP(&o.kubeConfig, "kube-config", "k", "", "path to kubeconfig (defaults to KUBECONFIG, then ~/.kube/config, then in-cluster)")

	run.AddCommand(dockerCmd, kubernetesCmd)
	root.AddCommand(run)

	if err := root.Execute(); err != nil {
		log := humanlog.New(quiet, verbose, humanlog.ResolveColor(color, os.Stdout))
		log.Fatal(err.Error())
		os.Exit(1)
	}
}

func runWithProvider(ctx context.Context, o runOpts, kind config.Provider) error {
	cfg := config.Defaults()
	cfg.Provider = kind
	cfg.Directory = o.directory
	cfg.Interval = o.interval
	cfg.PollInterval = o.poll
	cfg.FlushLogPath = o.flushLogPath
	cfg.BufferBytes = o.buffer
	cfg.KubeConfigPath = o.kubeConfig
	cfg.Quiet = quiet
	cfg.Verbose = verbose
	cfg.Color = config.ColorMode(color)

	if err := cfg.Validate(); err != nil {
		return err
	}

	hl := humanlog.New(cfg.Quiet, cfg.Verbose, humanlog.ResolveColor(string(cfg.Color), os.Stdout))
	logger := hl.Slog()
	hl.Banner(_banner, time.Now().Format("2006-01-02 15:04:05"))

	layout, err := cgroup.Detect()
	if err != nil {
		hl.Fatal(fmt.Sprintf("cgroup detection failed: %v", err))
		os.Exit(1)
	}
	if layout.Mode == cgroup.Unsupported {
		hl.Fatal("no supported cgroup hierarchy found on this host")
		os.Exit(1)
	}
	logger.Info("detected cgroup layout", "mode", layout.Mode.String(), "detail", layout.Detail)

	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		hl.Fatal(fmt.Sprintf("cannot create output directory: %v", err))
		os.Exit(1)
	}

	var p provider.Provider
	switch kind {
	case config.ProviderDocker:
		p, err = provider.NewDockerProvider()
	case config.ProviderKubernetes:
		p = provider.NewKubernetesProvider(cfg.KubeConfigPath)
	}
	if err != nil {
		hl.Fatal(fmt.Sprintf("cannot construct provider: %v", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Initialize(ctx); err != nil {
		hl.Fatal(fmt.Sprintf("cannot reach provider: %v", err))
		os.Exit(1)
	}
	defer p.Close()

	sys := sysinfo.Collect()
	logger.Info("host summary",
		"hostname", sys.Hostname,
		"cpus", sys.CPUOnline,
		"memory", types.Bytes(sys.MemoryBytes).Humanized(),
	)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var flushLog *csvy.FlushLog
	if cfg.FlushLogPath != "" {
		flushLog, err = csvy.OpenFlushLog(cfg.FlushLogPath, 1024, logger)
		if err != nil {
			hl.Fatal(fmt.Sprintf("cannot open flush log: %v", err))
			os.Exit(1)
		}
	}

	eng := engine.New(engine.Config{
		Directory:      cfg.Directory,
		SampleInterval: cfg.Interval,
		PollInterval:   cfg.PollInterval,
		BufferBytes:    cfg.BufferBytes,
	}, p, layout, sys, logger, m, flushLog)

	healthSrv := health.New(o.healthAddr, eng, reg)
	healthSrv.Start(ctx)

	logger.Info("radvisor started", "provider", kind, "directory", cfg.Directory)
	err = eng.Run(ctx)
	logger.Info("radvisor stopped")

	if ctx.Err() != nil {
		os.Exit(130)
	}
	return err
}

const _banner = `radvisor - Container/Pod Resource Usage Collector

* Streaming cgroup statistics to CSVY logs

Starting run at %s
`
