// Package client is the public API for talking to the joy daemon. The
// transport lives in internal/client; this package adds the typed wrappers.
package client

import (
	intclient "github.com/ktulhy-kun/ArduinoAnalogJoy/internal/client"
)

// Re-exported transport errors, so callers can errors.Is against them
// without importing the internal package.
var (
	ErrDaemonNotRunning = intclient.ErrDaemonNotRunning
	ErrPermissionDenied = intclient.ErrPermissionDenied
	ErrNotFound         = intclient.ErrNotFound
)

// Client wraps the unix-socket transport with typed daemon APIs.
type Client struct {
	*intclient.Client
}

// NewClient returns a Client bound to the daemon socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{intclient.NewClient(socketPath)}
}
