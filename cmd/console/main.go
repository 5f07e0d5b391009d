package main

import (
	"context"
	"curoo/internal/appointments"
	"curoo/internal/booking"
	"curoo/internal/console"
	"curoo/internal/repository"
	"curoo/pkg/client"
	"curoo/pkg/config"
	"curoo/pkg/events"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
)

const ServiceName = "console"

const recentLimit = 5

// usage: console [stats|export|book [form.json]]; with no argument stats and
// export both run. book reads the form from the file or stdin.
func main() {
	cfg := config.Load(ServiceName)

	command := "all"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if command != "all" && command != "stats" && command != "export" && command != "book" {
		fmt.Fprintf(os.Stderr, "usage: %s [stats|export|book [form.json]]\n", os.Args[0])
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remote := client.New(cfg.APIBaseURL, cfg.APITimeout)
	if err := remote.WaitForHealthy(ctx, cfg.APITimeout); err != nil {
		cfg.Log.Fatal("Persistence service unavailable", "base_url", cfg.APIBaseURL, "error", err)
	}

	if command == "book" {
		book(ctx, cfg, remote)
		return
	}

	workflow := appointments.New(repository.NewAppointments(), appointments.WithLogger(cfg.Log))
	admin := console.New(repository.NewDoctors(), repository.NewServices(), workflow,
		console.WithDownloader(console.NewFileDownloader(cfg.ExportDir)),
		console.WithLogger(cfg.Log),
	)

	if err := admin.Load(ctx, remote); err != nil {
		cfg.Log.Fatal("Failed to load collections", "error", err)
	}

	if command == "all" || command == "stats" {
		printJSON(cfg, map[string]any{
			"stats":               admin.Stats(),
			"recent_appointments": admin.RecentAppointments(recentLimit),
		})
	}

	if command == "all" || command == "export" {
		path, err := admin.Export(ctx)
		if err != nil {
			cfg.Log.Fatal("Export failed", "error", err)
		}
		cfg.Log.Info("Export written", "path", path)
	}
}

func book(ctx context.Context, cfg *config.Config, remote *client.Client) {
	var in io.Reader = os.Stdin
	if len(os.Args) > 2 {
		f, err := os.Open(os.Args[2])
		if err != nil {
			cfg.Log.Fatal("Failed to open booking form", "path", os.Args[2], "error", err)
		}
		defer f.Close()
		in = f
	}

	var form booking.Form
	if err := json.NewDecoder(in).Decode(&form); err != nil {
		cfg.Log.Fatal("Failed to decode booking form", "error", err)
	}

	reset := make(chan struct{})
	session := booking.NewSession(remote.Appointments,
		booking.FromConfig(cfg),
		booking.WithPublisher(events.NewLogPublisher(cfg.Log)),
		booking.WithObserver(func(t booking.Transition) {
			if t.From == booking.StateSucceeded && t.To == booking.StateEditing {
				close(reset)
			}
		}),
	)
	defer session.Dispose()

	if err := session.Open(); err != nil {
		cfg.Log.Fatal("Failed to open booking form", "error", err)
	}
	if err := session.SetDraft(form); err != nil {
		cfg.Log.Fatal("Failed to fill booking form", "error", err)
	}
	done, err := session.Submit(ctx)
	if err != nil {
		cfg.Log.Fatal("Booking form rejected", "error", err)
	}

	res := <-done
	if res.Err != nil {
		cfg.Log.Fatal("Booking failed", "error", session.ErrorMessage())
	}
	printJSON(cfg, res.Appointment)

	// The confirmation stays up until the session resets the form.
	select {
	case <-reset:
	case <-ctx.Done():
	}
}

func printJSON(cfg *config.Config, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cfg.Log.Fatal("Failed to encode output", "error", err)
	}
	fmt.Println(string(out))
}
