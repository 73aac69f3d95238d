package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
)

func NewModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "mode [relative|absolute]",
		Short:     "Set how stick positions become mouse movement",
		GroupID:   gBasic,
		ValidArgs: []string{string(translator.ModeRelative), string(translator.ModeAbsolute)},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Long: `Set how stick positions become mouse movement.

relative moves the cursor by a delta with a cubic response curve: fine control
near center, fast movement at the extremes. absolute places the cursor at the
screen position matching the stick position.`,
		RunE: func(_ *cobra.Command, args []string) error {
			ret, err := apiClient.SetMode(translator.Mode(args[0]))
			if err != nil {
				return fmt.Errorf("failed to set mode: %w", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			return nil
		},
	}
}

func NewScreenSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "screen-size [width] [height]",
		Short:   "Set the screen size used by absolute mode",
		GroupID: gAdvanced,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := parseIntArg(args[:1], "width")
			if err != nil {
				return err
			}
			h, err := parseIntArg(args[1:], "height")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetScreenSize(w, h)
			if err != nil {
				return fmt.Errorf("failed to set screen size: %w", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			return nil
		},
	}
}

func NewSampleCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "sample-count [count]",
		Short:   "Set how many samples each calibration phase takes",
		GroupID: gAdvanced,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := parseIntArg(args, "sample count")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetSampleCount(n)
			if err != nil {
				return fmt.Errorf("failed to set sample count: %w", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			return nil
		},
	}
}
