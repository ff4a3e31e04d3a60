package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "스크리닝 배치 실행",
	Long: `워치리스트 스크리닝 배치를 한 번 실행합니다.

이 명령어는:
- 워치리스트 결정 (LLM → 파일 → 기본값)
- 티커별 시세/펀더멘털/뉴스 수집 및 지표 계산
- 스코어링 (OPENAI_API_KEY 있으면 LLM, 없으면 휴리스틱)
- CSV / S3 / Slack / Postgres 출력

Example:
  go run ./cmd/desk screen
  go run ./cmd/desk screen --use-llm`,
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := newApp(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}
	defer application.close()

	PrintJobHeader(JobMetadata{
		JobType:   "Watchlist Screening",
		Tag:       "Screen",
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})

	result, err := application.pipeline.Run(ctx)
	if err != nil {
		fmt.Printf("❌ Screening failed: %v\n", err)
		return err
	}

	PrintJobCompletion("Screening", result.Elapsed.Seconds())
	fmt.Printf("   Screened: %d | Skipped: %d | Output: %s\n",
		result.Screened, result.Skipped, application.cfg.Screening.OutputFile)

	return nil
}
