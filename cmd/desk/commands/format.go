package commands

import (
	"fmt"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// JobMetadata holds job execution metadata
type JobMetadata struct {
	JobType   string
	Tag       string
	Timestamp string
	Tickers   string // Optional
}

// PrintJobHeader prints a formatted job header
func PrintJobHeader(meta JobMetadata) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", meta.JobType)
	fmt.Println("───────────────────────────────────────────────────────────")

	if meta.Tickers != "" {
		fmt.Printf("  Tickers   : %s\n", meta.Tickers)
	}

	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("[%s] Triggered at %s\n", meta.Tag, meta.Timestamp)
}

// PrintJobCompletion prints job completion message
func PrintJobCompletion(jobType string, duration float64) {
	fmt.Println()
	fmt.Printf("✅ %s completed in %.2fs\n", jobType, duration)
}
