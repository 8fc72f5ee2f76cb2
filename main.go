// QuetzalMap monitor is a terminal client for a QuetzalMap server.
//
// It connects to the server's live event stream, keeps local player, storm
// and marker state in sync and prints a periodic summary for one world.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gohugoio/httpcache"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/quetzalmap/quetzalmap/internal/cache"
	"github.com/quetzalmap/quetzalmap/internal/config"
	"github.com/quetzalmap/quetzalmap/internal/coord"
	"github.com/quetzalmap/quetzalmap/internal/httptransport"
	"github.com/quetzalmap/quetzalmap/internal/mapapi"
	"github.com/quetzalmap/quetzalmap/internal/qmap"
	"github.com/quetzalmap/quetzalmap/internal/store"
	"github.com/quetzalmap/quetzalmap/internal/stream"
	"github.com/quetzalmap/quetzalmap/internal/tiles"
	"github.com/quetzalmap/quetzalmap/internal/view"
)

// defined flags
var (
	levelFlag     logLevelFlag
	logFileFlag   = flag.Bool("logfile", true, "Write logs to a file instead of the console")
	serverFlag    = flag.String("server", "", "Base URL of the map server (overrides the config file)")
	worldFlag     = flag.String("world", "", "World to monitor (overrides the config file)")
	uninstallFlag = flag.Bool("uninstall", false, "Uninstalls the app by deleting all user files")
	showDirsFlag  = flag.Bool("show-dirs", false, "Show directories where user data is stored")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	ad := newAppDirs()
	if *showDirsFlag {
		fmt.Printf("Cache: %s\n", ad.cache)
		fmt.Printf("Logs: %s\n", ad.log)
		fmt.Printf("Settings: %s\n", ad.settings)
		return
	}
	if *uninstallFlag {
		fmt.Print("Are you sure you want to uninstall this app and delete all user files (y/N)?")
		var input string
		fmt.Scanln(&input)
		if strings.ToLower(input) == "y" {
			if err := ad.deleteAll(); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("App uninstalled")
		} else {
			fmt.Println("Aborted")
		}
		return
	}
	if *logFileFlag {
		fn, err := ad.initLogFile()
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   fn,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	cfg, err := config.Load(ad.configFile())
	if err != nil {
		log.Fatal(err)
	}
	if *serverFlag != "" {
		cfg.ServerURL = *serverFlag
	}
	if *worldFlag != "" {
		cfg.World = *worldFlag
	}

	appCache := cache.New()
	rhc := retryablehttp.NewClient()
	rhc.Logger = slog.Default()
	rhc.ResponseLogHook = logResponse
	rhc.RetryMax = 3
	rhc.HTTPClient.Transport = &httpcache.Transport{
		Cache:               newCacheAdapter(appCache, "http-", 24*time.Hour),
		MarkCachedResponses: true,
		Transport:           httptransport.LoggedTransport{},
	}
	httpClient := rhc.StandardClient()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := mapapi.New(cfg.ServerURL, httpClient)
	var worlds []string
	var borders map[string]qmap.WorldBorder
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		worlds, err = api.Worlds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		borders, err = api.WorldBorders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		// reference data is optional, the map works without it
		slog.Warn("Could not fetch server reference data", "error", err)
	}
	if len(worlds) > 0 && !slices.Contains(worlds, cfg.World) {
		slog.Warn("Configured world not offered by server", "world", cfg.World, "available", worlds)
	}

	players := store.NewPlayerStore()
	storms := store.NewStormStore()
	markers := store.NewMarkerStore()
	tileSvc := tiles.New(cfg.ServerURL, appCache, &http.Client{
		Transport: httptransport.LoggedTransport{},
	})

	sc := stream.New(cfg.EventsURL())
	sc.StatusChanged.AddListener(func(_ context.Context, s stream.Status) {
		slog.Info("Stream status changed", "status", s)
	})
	sc.EventReceived.AddListener(func(_ context.Context, ev qmap.Event) {
		players.Apply(ev)
		storms.Apply(ev)
		markers.Apply(ev)
		tileSvc.HandleEvent(ev)
	})
	sc.Connect()
	defer sc.Disconnect()

	printHeader(cfg, worlds, borders)

	ticker := time.NewTicker(time.Duration(cfg.SummarySeconds) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("Shutting down")
			return
		case <-ticker.C:
			printSummary(cfg.World, sc, players, storms, markers)
		}
	}
}

func printHeader(cfg config.Config, worlds []string, borders map[string]qmap.WorldBorder) {
	fmt.Printf("Monitoring world %q at %s\n", cfg.World, cfg.ServerURL)
	if len(worlds) > 0 {
		fmt.Printf("Worlds on server: %s\n", strings.Join(worlds, ", "))
	}
	if b, ok := borders[cfg.World]; ok {
		sw, ne := coord.PanBounds(b)
		fmt.Printf("World border: center (%.0f, %.0f), size %s blocks, pan bounds [%.0f %.0f] to [%.0f %.0f]\n",
			b.CenterX, b.CenterZ, humanize.Commaf(b.Size), sw.X, sw.Y, ne.X, ne.Y)
	}
	bar := view.ScaleLabel(coord.CanonicalZoom)
	radius := view.PrefetchRadius(cfg.ViewportWidth, cfg.ViewportHeight, coord.CanonicalZoom)
	fmt.Printf("Scale: %s per %d px, prefetch radius %d tiles\n", bar.Text, bar.PixelWidth, radius)
}

func printSummary(world string, sc *stream.Client, players *store.PlayerStore, storms *store.StormStore, markers *store.MarkerStore) {
	fmt.Printf("--- %s | %s events received (connection %d) ---\n",
		time.Now().Format("15:04:05"), humanize.Comma(int64(sc.EventCount())), sc.ConnectionID())
	for _, p := range players.Players(world) {
		a := coord.TileAddressFor(coord.WorldPoint{X: p.X, Z: p.Z}, p.World)
		fmt.Printf("  player %-16s at (%.0f, %.0f, %.0f) on tile %s\n", p.DisplayName, p.X, p.Y, p.Z, a)
	}
	for _, s := range storms.Storms(world) {
		fmt.Printf("  storm %s %s at (%.0f, %.0f) radius %.0f, %s remaining\n",
			s.ID, s.Phase, s.X, s.Z, s.Radius, view.FormatRemaining(s.RemainingSeconds))
	}
	fmt.Printf("  %d players, %d storms, %d markers\n",
		players.Count(world), storms.Count(world), markers.Count(world))
}
