package slack

import (
	"encoding/json"
	"fmt"
)

// AttachmentTextMax is the largest message, in bytes, that is sent inside a colored attachment.
const AttachmentTextMax int = 4000

// SectionTextMax is the largest number of characters placed in a single section block.
const SectionTextMax int = 3000

// Payload is the JSON body posted to the chat.postMessage API. It is either a *BlocksPayload or
// an *AttachmentPayload.
type Payload interface {
	ChannelID() string
}

// BlocksPayload is the uncolored form of a message. Text duplicates the message body because
// Slack uses it for notifications.
type BlocksPayload struct {
	Channel string        `json:"channel"`
	Text    string        `json:"text"`
	Blocks  []interface{} `json:"blocks"`
}

func (p *BlocksPayload) ChannelID() string {
	return p.Channel
}

// AttachmentPayload is the colored form of a message. The blocks live inside a single attachment
// so that Slack renders the color as a sidebar.
type AttachmentPayload struct {
	Channel     string        `json:"channel"`
	Text        string        `json:"text"`
	Attachments []*Attachment `json:"attachments"`
}

func (p *AttachmentPayload) ChannelID() string {
	return p.Channel
}

type Attachment struct {
	Color  string        `json:"color"`
	Blocks []interface{} `json:"blocks"`
}

// BuildPayload assembles the payload for message. title is optional and becomes a header block.
// color, if not empty, must already be resolved (see ResolveColor). The returned string is a
// warning, set when color had to be dropped because message is too long for an attachment.
func BuildPayload(channel string, message string, title string, color string) (Payload, string) {

	blocks := make([]interface{}, 0)

	if title != "" {
		blocks = append(blocks, NewHeaderBlock(title))
	}

	for chunk := range Chunks(message, SectionTextMax) {
		blocks = append(blocks, NewSectionBlock(chunk))
	}

	return assemblePayload(channel, message, color, blocks)
}

// BuildPayloadWithBlocks is like BuildPayload but sends blocks, typically the output of
// ParseBlocks, instead of generating header and section blocks.
func BuildPayloadWithBlocks(channel string, message string, color string, blocks []json.RawMessage) (Payload, string) {

	raw := make([]interface{}, len(blocks))

	for idx, b := range blocks {
		raw[idx] = b
	}

	return assemblePayload(channel, message, color, raw)
}

func assemblePayload(channel string, message string, color string, blocks []interface{}) (Payload, string) {

	warning := ""

	if color != "" && len(message) > AttachmentTextMax {
		warning = fmt.Sprintf("Message exceeds %d chars; sending without color", AttachmentTextMax)
		color = ""
	}

	if color == "" {

		return &BlocksPayload{
			Channel: channel,
			Text:    message,
			Blocks:  blocks,
		}, warning
	}

	return &AttachmentPayload{
		Channel: channel,
		Text:    "",
		Attachments: []*Attachment{
			{
				Color:  color,
				Blocks: blocks,
			},
		},
	}, warning
}
