package slack

/*
 Post a message with the broadcaster interface:

 slack://{CHANNEL}?credentials={RUNTIMEVAR_URI}&color=good

 > curl -H "Authorization: Bearer {TOKEN}" -H "Content-Type: application/json; charset=utf-8" -d '{"channel":"{CHANNEL}","text":"Testing","blocks":[...]}' https://slack.com/api/chat.postMessage
{"ok":true,"channel":"C04A8MNMZ2L","ts":"1668033543.569999", ...}
*/

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/aaronland/go-broadcaster"
	"github.com/aaronland/go-uid"
)

func init() {
	ctx := context.Background()
	broadcaster.RegisterBroadcaster(ctx, "slack", NewSlackBroadcaster)
}

// SlackBroadcaster implements the broadcaster.Broadcaster interface, posting each message to a
// single Slack channel.
type SlackBroadcaster struct {
	broadcaster.Broadcaster
	client  *HTTPClient
	channel string
	token   string
	color   string
	logger  *log.Logger
}

// NewSlackBroadcaster returns a SlackBroadcaster configured by a URI in the form of:
//
//	slack://{CHANNEL}?{PARAMETERS}
//
// Where {PARAMETERS} may be:
//   - `channel` - the channel to post to, if it can not be expressed as the URI host (for example "#general").
//   - `credentials` - a gocloud.dev/runtimevar URI resolving to the API token. If absent the token is read
//     from SLACK_API_KEY, ~/.slack/api-token or /etc/slack/api-token.
//   - `color` - an optional sidebar color for every message.
//   - `endpoint` - an alternate chat.postMessage endpoint.
//   - `timeout` - a duration string limiting each API call.
func NewSlackBroadcaster(ctx context.Context, uri string) (broadcaster.Broadcaster, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	channel := u.Host

	if q.Get("channel") != "" {
		channel = q.Get("channel")
	}

	if channel == "" {
		return nil, fmt.Errorf("Missing channel")
	}

	color := q.Get("color")

	if color != "" {

		_, err := ResolveColor(color)

		if err != nil {
			return nil, err
		}
	}

	token_cfg := DefaultTokenConfig()
	token_cfg.Credentials = q.Get("credentials")

	token, err := ResolveToken(ctx, token_cfg)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive token from credentials, %w", err)
	}

	var timeout time.Duration

	if q.Get("timeout") != "" {

		d, err := time.ParseDuration(q.Get("timeout"))

		if err != nil {
			return nil, fmt.Errorf("Invalid ?timeout= parameter, %w", err)
		}

		timeout = d
	}

	client := NewHTTPClient(q.Get("endpoint"), timeout)
	logger := log.Default()

	br := &SlackBroadcaster{
		client:  client,
		channel: channel,
		token:   token,
		color:   color,
		logger:  logger,
	}

	return br, nil
}

// BroadcastMessage posts msg.Body, with msg.Title as a header, and returns the message timestamp
// as its UID. Images are not supported and are skipped. An empty body is an error.
func (b *SlackBroadcaster) BroadcastMessage(ctx context.Context, msg *broadcaster.Message) (uid.UID, error) {

	if msg.Body == "" {
		return nil, ErrNoMessage
	}

	if len(msg.Images) > 0 {
		b.logger.Printf("Skipping %d image(s), only text messages are supported", len(msg.Images))
	}

	cfg := &SendConfig{
		Channel: b.channel,
		Message: msg.Body,
		Title:   msg.Title,
		Color:   b.color,
		Token:   b.token,
	}

	rsp, err := Send(ctx, b.client, cfg)

	if err != nil {
		return nil, fmt.Errorf("Failed to post message, %w", err)
	}

	if rsp.Warning != "" {
		b.logger.Printf("Warning: %s", rsp.Warning)
	}

	return uid.NewStringUID(ctx, rsp.TS)
}

func (b *SlackBroadcaster) SetLogger(ctx context.Context, logger *log.Logger) error {
	b.logger = logger
	return b.client.SetLogger(ctx, logger)
}
