package client

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/events"
)

// FollowEvents subscribes to the daemon's SSE stream and delivers decoded
// events until ctx is cancelled or the stream ends. The returned channel is
// closed when the stream ends.
func (c *Client) FollowEvents(ctx context.Context) (<-chan events.Event, error) {
	body, err := c.Stream(ctx, "/events")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open event stream")
	}

	ch := make(chan events.Event, 16)
	go func() {
		defer close(ch)
		defer func() { _ = body.Close() }()

		var name string
		var data strings.Builder

		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				// Blank line terminates one SSE message.
				if name != "" || data.Len() > 0 {
					ev := events.Event{
						Name: name,
						Data: json.RawMessage(data.String()),
					}
					select {
					case ch <- ev:
					case <-ctx.Done():
						return
					}
				}
				name = ""
				data.Reset()
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}
	}()

	return ch, nil
}
