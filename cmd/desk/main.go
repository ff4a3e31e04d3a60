package main

import (
	"os"

	"github.com/wonny/marketdesk/cmd/desk/commands"
)

// main is the entry point for the MarketDesk CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/desk [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
