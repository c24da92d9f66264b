// Package send implements the slack-cli command line application.
package send

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	slack "github.com/sblaisot/slack-cli"
	"github.com/sblaisot/slack-cli/internal/config"
	"github.com/spf13/cobra"
)

var Version = "0.1.0"

// RunOptions are the process resources the application reads from and writes to.
type RunOptions struct {
	Args   []string
	Stdin  io.Reader
	Stderr io.Writer
	// StdinIsTerminal reports whether Stdin is an interactive terminal, in which case it is never read.
	StdinIsTerminal bool
	// Client, if not nil, replaces the HTTP client built from the configuration.
	Client slack.Client
}

type flags struct {
	channel     string
	message     string
	color       string
	title       string
	blocks      string
	config      string
	credentials string
	verbose     bool
}

// DefaultRunOptions returns options bound to the current process.
func DefaultRunOptions() *RunOptions {

	fd := os.Stdin.Fd()

	return &RunOptions{
		Args:            os.Args[1:],
		Stdin:           os.Stdin,
		Stderr:          os.Stderr,
		StdinIsTerminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func Run(ctx context.Context) error {
	return RunWithOptions(ctx, DefaultRunOptions())
}

func RunWithOptions(ctx context.Context, opts *RunOptions) error {

	cmd := NewCommand(opts)
	cmd.SetArgs(opts.Args)

	return cmd.ExecuteContext(ctx)
}

// NewCommand returns the root slack-cli command.
func NewCommand(opts *RunOptions) *cobra.Command {

	f := &flags{}

	cmd := &cobra.Command{
		Use:           "slack-cli",
		Short:         "Send messages to Slack",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, f)
		},
	}

	cmd.SetIn(opts.Stdin)
	cmd.SetErr(opts.Stderr)

	fs := cmd.Flags()
	fs.StringVarP(&f.channel, "channel", "c", "", "Channel name or ID (e.g. \"#general\" or \"C01234567\")")
	fs.StringVarP(&f.message, "message", "m", "", "Message text (reads from stdin if omitted)")
	fs.StringVar(&f.color, "color", "", "Color for the attachment sidebar: #RRGGBB or good, success, warning, danger, error")
	fs.StringVarP(&f.title, "title", "t", "", "Title displayed as a header above the message")
	fs.StringVar(&f.blocks, "blocks", "", "JSON blocks file, use --blocks=FILE (reads from stdin if no file is given)")
	fs.StringVar(&f.config, "config", "", "Path to a YAML config file (default: ~/.slack/config.yaml)")
	fs.StringVar(&f.credentials, "credentials", "", "A gocloud.dev/runtimevar URI resolving to the API token")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	fs.Lookup("blocks").NoOptDefVal = "-"

	cmd.MarkFlagRequired("channel")
	cmd.MarkFlagsMutuallyExclusive("blocks", "title")

	return cmd
}

func run(cmd *cobra.Command, opts *RunOptions, f *flags) error {

	ctx := cmd.Context()
	fs := cmd.Flags()

	zl := newLogger(opts.Stderr, f.verbose)

	cfg, err := loadConfig(f)

	if err != nil {
		return err
	}

	send_cfg := &slack.SendConfig{
		Channel: f.channel,
		Title:   f.title,
		Color:   cfg.Color,
	}

	if fs.Changed("color") {
		send_cfg.Color = f.color
	}

	if fs.Changed("blocks") {

		blocks, err := readBlocks(opts, f.blocks)

		if err != nil {
			return err
		}

		send_cfg.Blocks = blocks
		send_cfg.Message = f.message

	} else {

		msg, err := readMessage(opts, f.message, fs.Changed("message"))

		if err != nil {
			return err
		}

		send_cfg.Message = msg
	}

	token_cfg := tokenConfig(cfg, f)

	token, err := slack.ResolveToken(ctx, token_cfg)

	if err != nil {
		return err
	}

	send_cfg.Token = token

	client := opts.Client

	if client == nil {

		timeout, err := cfg.TimeoutDuration()

		if err != nil {
			return err
		}

		http_client := slack.NewHTTPClient(cfg.Endpoint, timeout)
		http_client.SetLogger(ctx, log.New(debugWriter{zl}, "", 0))

		client = http_client
	}

	zl.Debug().
		Str("channel", send_cfg.Channel).
		Int("message_bytes", len(send_cfg.Message)).
		Int("blocks", len(send_cfg.Blocks)).
		Str("color", send_cfg.Color).
		Msg("Sending message")

	rsp, err := slack.Send(ctx, client, send_cfg)

	if err != nil {
		return err
	}

	if rsp.Warning != "" {
		fmt.Fprintf(opts.Stderr, "Warning: %s\n", rsp.Warning)
	}

	zl.Debug().Str("ts", rsp.TS).Msg("Message sent")
	return nil
}

func loadConfig(f *flags) (*config.Config, error) {

	if f.config != "" {
		return config.Load(f.config, false)
	}

	return config.Load(config.DefaultConfigPath(), true)
}

func tokenConfig(cfg *config.Config, f *flags) *slack.TokenConfig {

	token_cfg := slack.DefaultTokenConfig()

	if cfg.Token.Env != "" {
		token_cfg.EnvVar = cfg.Token.Env
	}

	if len(cfg.Token.Files) > 0 {
		token_cfg.Paths = cfg.Token.Files
	}

	token_cfg.Credentials = cfg.Token.Credentials

	if f.credentials != "" {
		token_cfg.Credentials = f.credentials
	}

	return token_cfg
}

// readMessage returns the message flag when it was given, otherwise the trimmed contents of stdin.
// An interactive stdin is never read.
func readMessage(opts *RunOptions, message string, set bool) (string, error) {

	if set {

		if strings.TrimSpace(message) == "" {
			return "", slack.ErrNoMessage
		}

		return message, nil
	}

	if opts.StdinIsTerminal {
		return "", slack.ErrNoMessage
	}

	body, err := io.ReadAll(opts.Stdin)

	if err != nil {
		return "", &slack.StdinError{Err: err}
	}

	msg := strings.TrimSpace(string(body))

	if msg == "" {
		return "", slack.ErrNoMessage
	}

	return msg, nil
}

func readBlocks(opts *RunOptions, source string) ([]json.RawMessage, error) {

	var body []byte

	if source == "-" {

		if opts.StdinIsTerminal {
			return nil, &slack.InvalidBlocksError{Reason: "no input piped to stdin"}
		}

		b, err := io.ReadAll(opts.Stdin)

		if err != nil {
			return nil, &slack.StdinError{Err: err}
		}

		body = b

	} else {

		b, err := os.ReadFile(source)

		if err != nil {
			return nil, &slack.InvalidBlocksError{Reason: fmt.Sprintf("failed to read file '%s': %v", source, err)}
		}

		body = b
	}

	return slack.ParseBlocks(body)
}

func newLogger(wr io.Writer, verbose bool) zerolog.Logger {

	level := zerolog.WarnLevel

	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:     wr,
		NoColor: true,
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// debugWriter adapts a zerolog.Logger to the *log.Logger used by the slack package, logging each
// line at debug level.
type debugWriter struct {
	logger zerolog.Logger
}

func (w debugWriter) Write(p []byte) (int, error) {
	w.logger.Debug().Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
