package main

import (
	"context"
	"log"

	"github.com/mkarpis/notevault/internal/server"
	"github.com/mkarpis/notevault/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
