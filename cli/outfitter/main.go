package main

import (
	"os"

	"github.com/joho/godotenv"

	outfittercmder "github.com/outfitterco/outfitter/cmd/outfitter"
)

func main() {
	// API keys may live in a local .env during development.
	_ = godotenv.Load()

	cmd := outfittercmder.NewOutfitterCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
