package slack

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseBlocks(t *testing.T) {

	blocks, err := ParseBlocks([]byte(`[{"type": "section", "text": {"type": "mrkdwn", "text": "Hello"}}, {"type": "divider"}]`))

	if err != nil {
		t.Fatalf("Failed to parse blocks, %v", err)
	}

	if len(blocks) != 2 {
		t.Fatalf("Unexpected block count %d", len(blocks))
	}

	var b map[string]interface{}

	err = json.Unmarshal(blocks[1], &b)

	if err != nil {
		t.Fatalf("Failed to unmarshal block, %v", err)
	}

	if b["type"] != "divider" {
		t.Fatalf("Unexpected block %s", blocks[1])
	}
}

func TestParseBlocksLimit(t *testing.T) {

	divider := `{"type":"divider"}`

	hundred := "[" + strings.TrimSuffix(strings.Repeat(divider+",", MaxBlocks), ",") + "]"

	blocks, err := ParseBlocks([]byte(hundred))

	if err != nil {
		t.Fatalf("Failed to parse %d blocks, %v", MaxBlocks, err)
	}

	if len(blocks) != MaxBlocks {
		t.Fatalf("Unexpected block count %d", len(blocks))
	}

	too_many := "[" + strings.Repeat(divider+",", MaxBlocks) + divider + "]"

	_, err = ParseBlocks([]byte(too_many))

	if err == nil || !strings.Contains(err.Error(), "max 100") {
		t.Fatalf("Expected too many blocks error, got %v", err)
	}
}

func TestParseBlocksInvalid(t *testing.T) {

	tests := map[string]string{
		`[]`:                      "empty",
		`{"type": "section"}`:     "array",
		`["not an object"]`:       "object",
		`[{"type":"divider"}, 1]`: "object",
		`not json at all`:         "JSON",
	}

	for input, reason := range tests {

		_, err := ParseBlocks([]byte(input))

		var blocks_err *InvalidBlocksError

		if !errors.As(err, &blocks_err) {
			t.Fatalf("Expected InvalidBlocksError for '%s', got %v", input, err)
		}

		if !strings.Contains(blocks_err.Reason, reason) {
			t.Fatalf("Unexpected reason for '%s': '%s'", input, blocks_err.Reason)
		}
	}
}
