package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of joy",
		Long:    `Get joystick status, calibration state, and configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := apiClient.GetStatus()
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			cmd.Println(bold("Device:"))
			cmd.Printf("  Port: %s\n", bold("%s", st.Port))
			cmd.Printf("  Baud rate: %s\n", bold("%d", st.BaudRate))

			cmd.Println()
			cmd.Println(bold("Calibration:"))
			cmd.Printf("  Calibrated: %s\n", bool2Text(st.Calibrated))
			if st.Calibration != nil {
				cmd.Printf("  Phase: %s\n", bold("%s", st.Calibration.Phase))
				if st.Calibration.Phase == calibration.PhaseCenteringAverage ||
					st.Calibration.Phase == calibration.PhaseTravelRange {
					cmd.Printf("  Progress: %s\n", bold("%d%%", st.Calibration.Percent))
				}
				if st.Calibration.Message != "" {
					cmd.Printf("  Message: %s\n", st.Calibration.Message)
				}
			}
			if !st.ScheduledAt.IsZero() {
				cmd.Printf("  Next scheduled recalibration: %s\n", bold("%s", st.ScheduledAt.Format(time.DateTime)))
			}

			cmd.Println()
			cmd.Println(bold("Output:"))
			cmd.Printf("  Mode: %s\n", bold("%s", st.Mode))
			if st.Mode == translator.ModeAbsolute {
				cmd.Printf("  Screen size: %s\n", bold("%dx%d", st.ScreenWidth, st.ScreenHeight))
			}

			return nil
		},
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
