package main

import (
	"os"

	"github.com/klabast/wb-services/payday-calendar/internal/commands"
	"github.com/klabast/wb-services/payday-calendar/internal/log"
)

func main() {
	defer log.Sync()
	if err := commands.Execute(); err != nil {
		log.Sync()
		os.Exit(1)
	}
}
