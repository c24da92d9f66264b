package slack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/whosonfirst/go-ioutil"
)

// DefaultEndpoint is the chat.postMessage API method.
const DefaultEndpoint string = "https://slack.com/api/chat.postMessage"

// DefaultTimeout bounds a single call to the Slack API.
const DefaultTimeout time.Duration = 30 * time.Second

// Response is the subset of a chat.postMessage reply that callers care about.
type Response struct {
	OK      bool
	Error   string
	Warning string
	Channel string
	TS      string
}

// Client posts an encoded message payload to Slack.
type Client interface {
	PostMessage(context.Context, string, []byte) (*Response, error)
}

// HTTPClient is a Client that talks to the Slack Web API over HTTP.
type HTTPClient struct {
	Client
	http_client *http.Client
	endpoint    string
	logger      *log.Logger
}

// NewHTTPClient returns an HTTPClient posting to endpoint, or DefaultEndpoint if endpoint is
// empty. A timeout of zero or less means DefaultTimeout.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {

	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	http_client := &http.Client{
		Timeout: timeout,
	}

	cl := &HTTPClient{
		http_client: http_client,
		endpoint:    endpoint,
		logger:      log.New(io.Discard, "", 0),
	}

	return cl
}

func (cl *HTTPClient) SetLogger(ctx context.Context, logger *log.Logger) error {
	cl.logger = logger
	return nil
}

// PostMessage sends payload, authenticated with token, and decodes the reply. Any reply that
// is not HTTP 200 with a JSON body is an error; "ok": false is not, it is left to the caller.
func (cl *HTTPClient) PostMessage(ctx context.Context, token string, payload []byte) (*Response, error) {

	req, err := http.NewRequest(http.MethodPost, cl.endpoint, bytes.NewReader(payload))

	if err != nil {
		return nil, fmt.Errorf("Failed to create request, %w", err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	cl.logger.Printf("POST %s (%d bytes)", cl.endpoint, len(payload))

	rsp, err := cl.call(ctx, req, token)

	if err != nil {
		return nil, err
	}

	defer rsp.Close()

	body, err := io.ReadAll(rsp)

	if err != nil {
		return nil, fmt.Errorf("Failed to read response, %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("Failed to parse response, invalid JSON")
	}

	cl.logger.Printf("Response %s", body)

	parsed := gjson.ParseBytes(body)

	api_rsp := &Response{
		OK:      parsed.Get("ok").Bool(),
		Error:   parsed.Get("error").String(),
		Warning: parsed.Get("warning").String(),
		Channel: parsed.Get("channel").String(),
		TS:      parsed.Get("ts").String(),
	}

	return api_rsp, nil
}

func (cl *HTTPClient) call(ctx context.Context, req *http.Request, token string) (io.ReadSeekCloser, error) {

	req = req.WithContext(ctx)

	bearer_token := fmt.Sprintf("Bearer %s", token)

	req.Header.Set("Authorization", bearer_token)
	rsp, err := cl.http_client.Do(req)

	if err != nil {
		return nil, err
	}

	if rsp.StatusCode != http.StatusOK {
		rsp.Body.Close()
		return nil, fmt.Errorf("API call failed with status '%s'", rsp.Status)
	}

	return ioutil.NewReadSeekCloser(rsp.Body)
}
