package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/history"
)

// pricesCmd represents the prices command
var pricesCmd = &cobra.Command{
	Use:   "prices [ticker...]",
	Short: "가격 히스토리 다운로드",
	Long: `일봉 가격 히스토리를 티커별 CSV로 저장합니다.

티커를 지정하지 않으면 워치리스트 소스에서 결정합니다.
S3가 설정된 경우 prices/ 아래에 업로드합니다.

Example:
  go run ./cmd/desk prices
  go run ./cmd/desk prices AAPL MSFT NVDA`,
	RunE: runPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}

func runPrices(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := newApp(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}
	defer application.close()

	tickers := make([]string, 0, len(args))
	for _, arg := range args {
		tickers = append(tickers, strings.ToUpper(strings.TrimSpace(arg)))
	}

	if len(tickers) == 0 {
		tickers, err = application.watchlist.Resolve(ctx, application.cfg.Screening.WatchlistSize)
		if err != nil {
			fmt.Printf("❌ Watchlist resolution failed: %v\n", err)
			return err
		}
	}

	PrintJobHeader(JobMetadata{
		JobType:   "Price History Download",
		Tag:       "Prices",
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Tickers:   strings.Join(tickers, ", "),
	})

	start := time.Now()
	downloader := history.NewDownloader(
		application.quotes,
		application.cfg.Screening.PricesOutputDir,
		application.uploader,
		application.logger,
	)

	written, err := downloader.Run(ctx, tickers)
	if err != nil {
		fmt.Printf("❌ Download failed: %v\n", err)
		return err
	}

	PrintJobCompletion("Price download", time.Since(start).Seconds())
	fmt.Printf("   Written: %d/%d tickers → %s\n",
		written, len(tickers), application.cfg.Screening.PricesOutputDir)

	return nil
}
