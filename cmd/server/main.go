package main

import (
	"context"
	"log"

	"github.com/fincaforms/fincaforms/internal/server"
	"github.com/fincaforms/fincaforms/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
