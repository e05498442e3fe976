/*
Package main is a headless PinMap client.

It mounts a map session against the server, then runs one command:

	mapclient                               render the map
	mapclient drop <lat> <lng> <title> [content]
	mapclient delete <pin-id>

Configuration comes from PINMAP_API_URL, PINMAP_TOKEN and the optional PINMAP_POSITION.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"pinmap/internal/client/api"
	"pinmap/internal/client/mapview"
	"pinmap/internal/client/state"
	"pinmap/internal/configs"
	"pinmap/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Development)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := api.New(cfg.APIURL, cfg.Token)
	if err != nil {
		logx.Fatal(err, "Failed to create API client")
	}

	var geo mapview.Geolocator = mapview.NoGeolocation
	if cfg.Position != nil {
		pos := mapview.Position{Latitude: cfg.Position.Latitude, Longitude: cfg.Position.Longitude}
		geo = mapview.GeolocatorFunc(func(context.Context) (mapview.Position, error) { return pos, nil })
	}

	store := state.NewStore(state.Initial())
	controller := mapview.NewController(store, client, geo)
	controller.Mount(ctx)
	controller.Wait()

	if err := run(ctx, controller, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printView(controller.Render(time.Now()))
}

func run(ctx context.Context, c *mapview.Controller, args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "drop":
		if len(args) < 4 {
			return fmt.Errorf("usage: drop <lat> <lng> <title> [content]")
		}
		lat, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q", args[1])
		}
		lng, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q", args[2])
		}
		content := ""
		if len(args) > 4 {
			content = strings.Join(args[4:], " ")
		}

		c.Click(mapview.ButtonPrimary, lat, lng)
		created, err := c.SaveDraft(ctx, args[3], "", content)
		if err != nil {
			return err
		}
		logx.Info("Pin dropped", "pin_id", created.ID)
		c.SelectPin(created.ID)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: delete <pin-id>")
		}
		c.SelectPin(args[1])
		if c.Render(time.Now()).Popup == nil {
			return fmt.Errorf("pin %q not found", args[1])
		}
		return c.DeleteSelected(ctx)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printView(v mapview.View) {
	fmt.Printf("viewport %.4f,%.4f zoom %.0f\n", v.Viewport.Latitude, v.Viewport.Longitude, v.Viewport.Zoom)

	for _, m := range v.Markers {
		label := string(m.Kind)
		if m.PinID != "" {
			label += " " + m.PinID
		}
		fmt.Printf("  %-9s %10.5f %11.5f  %s\n", m.Color, m.Position.Latitude, m.Position.Longitude, label)
	}

	if p := v.Popup; p != nil {
		fmt.Printf("popup %q by %s (delete: %t)\n", p.Pin.Title, p.Pin.Author.Name, p.CanDelete)
	}

	if n := v.Notice; n != nil {
		prefix := "notice"
		if n.Kind == mapview.NoticeReauthenticate {
			prefix = "please sign in again"
		}
		fmt.Printf("%s: %s\n", prefix, n.Message)
	}
}
