package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tobacco-catalog-be/internal/config"
	"tobacco-catalog-be/pkg/events"
	pktNats "tobacco-catalog-be/pkg/nats"

	"github.com/fatih/color"
)

// events tails the CATALOG stream and prints every catalog mutation.
func main() {
	durable := flag.String("durable", "catalog-tail", "durable consumer name")
	eventType := flag.String("type", "", "only show one event type, e.g. TOBACCO_DELETED")
	flag.Parse()

	cfg := config.Load()
	if cfg.Events.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	// The publisher owns the stream definition; make sure it exists before
	// attaching a consumer to it.
	pub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	pub.Close()

	sub, err := pktNats.NewSubscriber(cfg.Events.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	subject := pktNats.StreamSubjects
	if *eventType != "" {
		subject = pktNats.Subject(*eventType)
	}

	err = sub.Subscribe(ctx, subject, *durable, func(_ context.Context, event events.Event) error {
		body, err := json.Marshal(event.Payload())
		if err != nil {
			return err
		}
		stamp := event.Timestamp().Format("2006-01-02 15:04:05")
		switch event.EventType() {
		case events.TobaccoCreated:
			color.Green("%s %-16s %s", stamp, event.EventType(), body)
		case events.TobaccoDeleted:
			color.Red("%s %-16s %s", stamp, event.EventType(), body)
		default:
			color.Yellow("%s %-16s %s", stamp, event.EventType(), body)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	color.Cyan("Tailing %s (Ctrl+C to stop)", subject)
	<-ctx.Done()
}
