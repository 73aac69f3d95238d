package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/events"
)

func NewCalibrateCommand() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:     "calibrate",
		Aliases: []string{"cali"},
		Short:   "Recalibrate the joystick",
		Long: `Start a calibration session on the daemon.

Calibration has two guided phases: first hold the stick at center, then sweep
it through its full range. Follow the printed instructions.`,
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ret, err := apiClient.StartCalibration()
			if err != nil {
				return fmt.Errorf("failed to start calibration: %w", err)
			}
			cmd.Println(ret)

			if !follow {
				return nil
			}
			return followCalibration(cmd)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", true, "follow calibration progress until it finishes")

	return cmd
}

// followCalibration prints phase transitions and progress from the daemon's
// event stream until the session ends or the user interrupts.
func followCalibration(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ch, err := apiClient.FollowEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to follow calibration: %w", err)
	}

	lastPercent := -1
	for ev := range ch {
		switch ev.Name {
		case events.CalibrationPhase:
			p, err := events.DecodeAs[events.CalibrationPhaseEvent](ev)
			if err != nil {
				continue
			}
			if p.Message != "" {
				cmd.Printf("%s: %s\n", p.To, p.Message)
			} else {
				cmd.Printf("%s\n", p.To)
			}
			lastPercent = -1

			switch calibration.Phase(p.To) {
			case calibration.PhaseDone:
				cmd.Println(bold("Calibration finished."))
				return nil
			case calibration.PhaseError:
				return fmt.Errorf("calibration failed: %s", p.Message)
			}
		case events.CalibrationProgress:
			p, err := events.DecodeAs[events.CalibrationProgressEvent](ev)
			if err != nil {
				continue
			}
			// Only whole-percent changes, to keep the output readable.
			if p.Percent != lastPercent && p.Percent%10 == 0 {
				cmd.Printf("  %d%%\n", p.Percent)
				lastPercent = p.Percent
			}
		}
	}

	if ctx.Err() != nil {
		cmd.Println("stopped following; calibration continues on the daemon")
		return nil
	}
	return fmt.Errorf("event stream closed before calibration finished")
}
