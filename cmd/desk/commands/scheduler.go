package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/scheduler"
	"github.com/wonny/marketdesk/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 데몬 시작
  list    - 등록된 작업 목록

Example:
  go run ./cmd/desk scheduler start
  go run ./cmd/desk scheduler list`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- daily-screening: SCREEN_CRON (기본: 평일 21:30 UTC)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runSchedulerStart,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  runSchedulerList,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := newApp(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}
	defer application.close()

	sched, err := buildScheduler(application)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}

	sched.Start()
	fmt.Println("🕐 Scheduler started. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
	return nil
}

func runSchedulerList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := newApp(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}
	defer application.close()

	sched, err := buildScheduler(application)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}

	fmt.Println("\nRegistered jobs:")
	for _, name := range sched.JobNames() {
		fmt.Printf("  - %s\n", name)
	}

	return nil
}

// buildScheduler registers every scheduled job
func buildScheduler(application *app) (*scheduler.Scheduler, error) {
	sched := scheduler.New(application.logger)

	screeningJob := jobs.NewScreeningJob(
		application.pipeline,
		application.cfg.Screening.Cron,
		application.logger,
	)
	if err := sched.AddJob(screeningJob); err != nil {
		return nil, err
	}

	return sched, nil
}
