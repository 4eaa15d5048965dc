package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"threatplane/api"
	"threatplane/buildcfg"
	"threatplane/config"
	"threatplane/devproxy"
	"threatplane/logging"
	"threatplane/theme"
)

var (
	configDir   string
	listen      string
	listenPort  int
	projectRoot string
	themeFile   string
	debug       bool
	appVersion  = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "threatplane",
	Short: "threatplane – DDoS analytics dashboard theme and dev server",
	Long: "Threatplane serves the dashboard's theme tokens, emits the bundler descriptor " +
		"and proxies the dashboard's third-party API calls during development.",
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", wd, "Directory holding threatplane.config (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", "", "Dashboard project root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&themeFile, "theme", "", "Theme overrides YAML file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&listen, "listen", "all", "IP address to listen on (default: all)")
	rootCmd.Flags().IntVar(&listenPort, "listen-port", 3000, "Port to listen on (default: 3000)")

	addCommands(rootCmd)
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dir, err := filepath.Abs(configDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.ProjectRoot = projectRoot
	}
	if flags.Changed("theme") {
		cfg.ThemeFile = themeFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("listen") || flags.Changed("listen-port") {
		if listen != "" && listen != "all" {
			cfg.ListenAddr = net.JoinHostPort(listen, fmt.Sprint(listenPort))
		} else {
			cfg.ListenAddr = fmt.Sprintf(":%d", listenPort)
		}
	}

	if err := logging.Init(cfg.Debug); err != nil {
		return config.Config{}, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

// describer builds descriptors for the configured project with proxy
// overrides and credentials applied.
func describer(cfg config.Config) api.DescribeFunc {
	root := cfg.Resolve(cfg.ProjectRoot)
	targets := cfg.ProxyTargets
	headers := cfg.ProxyHeaders()
	return func(reg *theme.Registry) buildcfg.Descriptor {
		return buildcfg.New(root, reg).WithProxyOverrides(targets, headers)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync()
	log := logging.Named("main")

	store, err := theme.NewStore(cfg.Resolve(cfg.ThemeFile), logging.Named("theme"))
	if err != nil {
		return fmt.Errorf("initialize theme: %w", err)
	}

	describe := describer(cfg)
	desc := describe(store.Current())
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("invalid build descriptor: %w", err)
	}

	proxy, err := devproxy.New(desc.Proxy, logging.Named("proxy"))
	if err != nil {
		return fmt.Errorf("initialize proxy: %w", err)
	}

	apiServer := api.NewServer(store, describe, logging.Named("api"))
	defer apiServer.Close()

	mux := http.NewServeMux()
	apiServer.Register(mux)
	theme.NewHandler(store).Register(mux)
	mux.Handle("/", api.StaticHandler(cfg.DistPath()))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           proxy.Wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher := theme.NewWatcher(store, apiServer.ThemeUpdated, logging.Named("theme"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		printListeningAddresses(cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		apiServer.Close()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnw("server shutdown", "error", err)
		}
		return nil
	})

	return g.Wait()
}

func printListeningAddresses(addr string) {
	log := logging.Named("main")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Infof("listening on http://%s", addr)
		return
	}

	if host != "" && host != "0.0.0.0" && host != "::" {
		log.Infof("listening on http://%s", net.JoinHostPort(host, port))
		return
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Infof("listening on http://0.0.0.0:%s", port)
		return
	}
	log.Info("listening on:")
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			log.Infof("  http://%s:%s", ipnet.IP.String(), port)
		}
	}
	log.Infof("  http://localhost:%s", port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
