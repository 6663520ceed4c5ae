package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"counter-sync/core/config"
	"counter-sync/core/feed"

	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	logg, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	client := feed.NewClient(cfg.Feed, logg)

	fmt.Printf("Tailing %s (table %s), Ctrl-C to stop\n", cfg.Feed.URL, cfg.Feed.Table)
	sub, err := client.Subscribe(func(v int64) {
		fmt.Printf("UPDATE value=%d\n", v)
	})
	if err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	sub.Unsubscribe()
}
