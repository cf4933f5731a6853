package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/vozativa/vozativa/internal/buildinfo"
	"github.com/vozativa/vozativa/internal/client/api"
	"github.com/vozativa/vozativa/internal/client/cli"
	"github.com/vozativa/vozativa/internal/client/config"
	"github.com/vozativa/vozativa/internal/client/device"
	"github.com/vozativa/vozativa/internal/client/store"
	"github.com/vozativa/vozativa/internal/client/tokenstore"
	"github.com/vozativa/vozativa/internal/client/tui"
	"github.com/vozativa/vozativa/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	tokens, err := tokenstore.NewFileStore(cfg.TokenFile)
	if err != nil {
		log.Fatalf("token store: %v", err)
	}

	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	session := store.NewSessionStore(client, tokens, logger)
	reports := store.NewReportStore(client, session, logger)

	if err := session.Restore(ctx); err != nil {
		logger.Warn(ctx, "session restore failed", "err", err)
	}

	var pos *device.Position
	if cfg.Latitude != nil && cfg.Longitude != nil {
		pos = &device.Position{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}
	}
	locator := device.NewStaticLocator(pos)
	geocoder := device.NewNominatimGeocoder(device.DefaultNominatimURL, cfg.RequestTimeout, logger)

	if useTUI(cfg.UI) {
		if err := tui.Run(tui.Options{
			Session:  session,
			Reports:  reports,
			Locator:  locator,
			Geocoder: geocoder,
			MapURL:   cfg.MapURL,
			Log:      logger,
		}); err != nil {
			log.Fatalf("ui: %v", err)
		}
		return
	}

	app := cli.NewApp(cli.Options{
		Session:  session,
		Reports:  reports,
		Locator:  locator,
		Geocoder: geocoder,
		MapURL:   cfg.MapURL,
		Log:      logger,
	})
	app.Run(ctx)
}

// useTUI resolves the "auto" mode by terminal detection.
func useTUI(mode string) bool {
	switch mode {
	case config.UITUI:
		return true
	case config.UIPlain:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
