package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func NewScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule [cron-expression]",
		Aliases: []string{"sch", "sched"},
		Short:   "Manage automatic recalibration schedule",
		Long: `Manage automatic recalibration schedule.

The schedule command can be used in multiple ways:
  joy schedule 'minute hour day month weekday' Set schedule with cron expression
  joy schedule disable                         Disable the schedule
  joy schedule postpone [duration]             Postpone next run
  joy schedule skip                            Skip next run
  joy schedule show                            Show current schedule`,
		Example: `  joy schedule '0 10 * * 0' (At 10:00 on Sunday)
  joy schedule '@every 720h' (Every 30 days)`,
		GroupID: gAdvanced,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runScheduleShow(cmd)
			}
			return runScheduleSet(cmd, args[0])
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "disable",
			Short: "Disable the recalibration schedule",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runScheduleSet(cmd, "")
			},
		},
		newSchedulePostponeCommand(),
		&cobra.Command{
			Use:   "skip",
			Short: "Skip the next scheduled recalibration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ret, err := apiClient.SkipSchedule()
				if err != nil {
					return fmt.Errorf("failed to skip schedule: %w", err)
				}
				cmd.Println(ret)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the current recalibration schedule",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runScheduleShow(cmd)
			},
		},
	)

	return cmd
}

func newSchedulePostponeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "postpone [duration]",
		Short: "Postpone the next scheduled recalibration",
		Example: `  joy schedule postpone      (Postpone by 1 hour)
  joy schedule postpone 90m  (Postpone by 90 minutes)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := time.Hour
			if len(args) > 0 {
				parsed, err := time.ParseDuration(args[0])
				if err != nil {
					return fmt.Errorf("invalid duration %q: %w", args[0], err)
				}
				d = parsed
			}

			ret, err := apiClient.PostponeSchedule(d)
			if err != nil {
				return fmt.Errorf("failed to postpone schedule: %w", err)
			}
			cmd.Println(ret)
			return nil
		},
	}
}

func runScheduleSet(cmd *cobra.Command, cronExpr string) error {
	ret, err := apiClient.Schedule(cronExpr)
	if err != nil {
		return fmt.Errorf("failed to set schedule: %w", err)
	}
	cmd.Println(ret)
	return nil
}

func runScheduleShow(cmd *cobra.Command) error {
	conf, err := apiClient.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	st, err := apiClient.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if conf.RecalibrateCron == nil || *conf.RecalibrateCron == "" {
		cmd.Println("No recalibration schedule is set.")
		return nil
	}

	cmd.Printf("Schedule: %s\n", bold("%s", *conf.RecalibrateCron))
	if !st.ScheduledAt.IsZero() {
		cmd.Printf("Next run: %s (%s from now)\n",
			bold("%s", st.ScheduledAt.Format(time.DateTime)),
			time.Until(st.ScheduledAt).Round(time.Second))
	}
	return nil
}
