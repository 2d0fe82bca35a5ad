package main

import (
	"log"

	"github.com/autoqa/autoqa/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		log.Fatalf("error while running the command: %v", err)
	}
}
