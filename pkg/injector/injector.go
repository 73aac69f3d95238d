// Package injector is the outbound boundary: it hands finished action token
// lists to the OS input-injection mechanism.
package injector

import (
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Injector dispatches one ordered action token list. The core does not
// interpret the result beyond the returned error.
type Injector interface {
	Dispatch(tokens []string) error
}

// XDoTool injects input through the xdotool command.
type XDoTool struct {
	// Command overrides the executable name, mainly for tests.
	Command string
}

// NewXDoTool returns the default xdotool-backed injector.
func NewXDoTool() *XDoTool {
	return &XDoTool{Command: "xdotool"}
}

// Dispatch runs xdotool with the token list as its arguments. An empty list
// is a no-op.
func (x *XDoTool) Dispatch(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	logrus.WithField("actions", strings.Join(tokens, " ")).Trace("dispatching input actions")
	return exec.Command(x.Command, tokens...).Run()
}
