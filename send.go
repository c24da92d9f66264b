package slack

import (
	"context"
	"encoding/json"
	"fmt"
)

// SendConfig is everything needed to post a single message.
type SendConfig struct {
	Channel string
	Message string
	// Color is optional; a keyword or "#RRGGBB" value accepted by ResolveColor.
	Color string
	// Title is optional and rendered as a header block. It is ignored when Blocks is set.
	Title string
	Token string
	// Blocks, if not empty, are sent instead of the generated header and section blocks.
	Blocks []json.RawMessage
}

type SendResult struct {
	OK      bool
	Warning string
	// TS is the timestamp Slack assigned to the message, when reported.
	TS string
}

// Send posts the message described by cfg using client. The color is validated before anything
// else happens. Callers are expected to reject an empty message themselves. A warning is reported when the color had to be dropped because the message is too
// long; otherwise any warning returned by Slack is reported.
func Send(ctx context.Context, client Client, cfg *SendConfig) (*SendResult, error) {

	color := ""

	if cfg.Color != "" {

		c, err := ResolveColor(cfg.Color)

		if err != nil {
			return nil, err
		}

		color = c
	}

	var payload Payload
	var warning string

	if len(cfg.Blocks) > 0 {
		payload, warning = BuildPayloadWithBlocks(cfg.Channel, cfg.Message, color, cfg.Blocks)
	} else {
		payload, warning = BuildPayload(cfg.Channel, cfg.Message, cfg.Title, color)
	}

	enc_payload, err := json.Marshal(payload)

	if err != nil {
		return nil, fmt.Errorf("Failed to marshal payload, %w", err)
	}

	rsp, err := client.PostMessage(ctx, cfg.Token, enc_payload)

	if err != nil {
		return nil, &HTTPError{Err: err}
	}

	if !rsp.OK {

		msg := rsp.Error

		if msg == "" {
			msg = UNKNOWN_API_ERROR
		}

		return nil, &APIError{Message: msg}
	}

	if warning == "" {
		warning = rsp.Warning
	}

	result := &SendResult{
		OK:      true,
		Warning: warning,
		TS:      rsp.TS,
	}

	return result, nil
}
