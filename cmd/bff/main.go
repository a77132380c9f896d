package main

import (
	"log"

	"github.com/smash-proyect/bff/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ bff failed to start: %v", err)
	}
}
