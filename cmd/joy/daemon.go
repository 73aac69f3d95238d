package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/daemon"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "daemon",
		Short:   "Run joy daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("joy daemon starting")
			return daemon.Run(configPath, unixSocketPath)
		},
	}
}
