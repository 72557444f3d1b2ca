package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"PixelBoard/internal/config"
	"PixelBoard/internal/editor"
	"PixelBoard/internal/logging"
	pbnet "PixelBoard/internal/net"
	"PixelBoard/internal/state"
	"PixelBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	serve := flag.Bool("serve", false, "start the read-only live viewer")
	addr := flag.String("addr", "", "viewer listen address (overrides the config)")
	discover := flag.Bool("discover", false, "list viewers on the local network and exit")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides the config)")
	flag.Parse()

	cfg, err := loadConfig(os.Stderr, *configPath, *logLevel)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *serve {
		cfg.Viewer.Enabled = true
	}
	if *addr != "" {
		cfg.Viewer.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetLogger(logging.New(os.Stderr, level))

	if *discover {
		runDiscover()
		return
	}
	runEditor(cfg)
}

// loadConfig reads the settings with a logger already installed, so
// messages from loading are not lost. The level comes from the flag, or
// info when the flag is empty.
func loadConfig(w io.Writer, path, flagLevel string) (config.Config, error) {
	level := slog.LevelInfo
	if flagLevel != "" {
		l, err := logging.ParseLevel(flagLevel)
		if err != nil {
			return config.Config{}, err
		}
		level = l
	}
	logging.SetLogger(logging.New(w, level))
	return config.Load(path)
}

func runDiscover() {
	logging.Logger().Info("browsing for viewers", "component", "main")
	err := pbnet.Browse(3*time.Second, func(addr string) {
		fmt.Printf("http://%s/\n", addr)
	})
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
}

func runEditor(cfg config.Config) {
	g, err := state.NewGrid(cfg.Width, cfg.Height, cfg.Background)
	if err != nil {
		log.Fatalf("Failed to create grid: %v", err)
	}
	doc := state.NewDocument(g, cfg.HistoryLimit)
	ed := editor.New(doc, editor.Options{
		Stride: float32(cfg.Stride),
		Color:  cfg.Palette[0],
		Tool:   cfg.ToolKind(),
	})
	logging.Logger().Info("document created", "component", "main", "id", doc.ID(),
		"width", cfg.Width, "height", cfg.Height, "tool", ed.Tool().String())

	shareLink := ""
	if cfg.Viewer.Enabled {
		stop, link, err := startViewer(cfg, doc)
		if err != nil {
			log.Fatalf("Failed to start viewer: %v", err)
		}
		defer stop()
		shareLink = link
	}

	ui.RunApp(cfg, ed, shareLink)
}

// startViewer serves doc to browsers and, if configured, announces it over
// mDNS. The returned func stops both.
func startViewer(cfg config.Config, doc *state.Document) (func(), string, error) {
	srv := pbnet.NewServer(doc, func() string { return cfg.FileName })
	doc.OnChange(srv.Publish)

	bound, err := srv.Start(cfg.Viewer.Addr)
	if err != nil {
		return nil, "", err
	}
	_, portStr, _ := net.SplitHostPort(bound.String())
	port, _ := strconv.Atoi(portStr)

	stopMDNS := func() {}
	if cfg.Viewer.Advertise {
		m, err := pbnet.Advertise(port, doc.ID())
		if err != nil {
			logging.Logger().Warn("mDNS advertise failed", "component", "main", "err", err)
		} else {
			stopMDNS = func() { m.Shutdown() }
		}
	}

	host, _, _ := net.SplitHostPort(cfg.Viewer.Addr)
	link := pbnet.ShareLink(net.JoinHostPort(host, portStr))
	logging.Logger().Info("share link", "component", "main", "url", link)

	stop := func() {
		stopMDNS()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logging.Logger().Warn("viewer shutdown", "component", "main", "err", err)
		}
	}
	return stop, link, nil
}
