package slack

const (
	BLOCK_HEADER  string = "header"
	BLOCK_SECTION string = "section"
)

const (
	TEXT_PLAIN    string = "plain_text"
	TEXT_MARKDOWN string = "mrkdwn"
)

// Block is a single Block Kit element. Header and section blocks share the same shape and are
// told apart only by their "type" property.
type Block struct {
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewHeaderBlock returns a "header" block whose text is rendered as plain text.
func NewHeaderBlock(text string) Block {

	return Block{
		Type: BLOCK_HEADER,
		Text: &Text{
			Type: TEXT_PLAIN,
			Text: text,
		},
	}
}

// NewSectionBlock returns a "section" block whose text is rendered as mrkdwn.
func NewSectionBlock(text string) Block {

	return Block{
		Type: BLOCK_SECTION,
		Text: &Text{
			Type: TEXT_MARKDOWN,
			Text: text,
		},
	}
}
