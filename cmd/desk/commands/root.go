package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	useLLM  bool
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "desk",
	Short: "MarketDesk - 미국 주식 스크리닝 파이프라인",
	Long: `MarketDesk Unified CLI

미국 주식 워치리스트 스크리닝 시스템.
시세/뉴스 수집부터 스코어링, CSV/S3/Slack 리포트까지.

Usage:
  go run ./cmd/desk [command]

Examples:
  go run ./cmd/desk screen
  go run ./cmd/desk screen --use-llm
  go run ./cmd/desk prices
  go run ./cmd/desk scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&useLLM, "use-llm", false, "LLM 스코어러 명시적 요청 (OPENAI_API_KEY 없으면 실패; 키가 있으면 플래그 없이도 LLM 사용)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
