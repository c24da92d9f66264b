package slack

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MaxBlocks is the largest number of blocks Slack accepts in a single message.
const MaxBlocks int = 100

// ParseBlocks validates data as a JSON array of 1 to MaxBlocks Block Kit objects and returns
// each object verbatim.
func ParseBlocks(data []byte) ([]json.RawMessage, error) {

	if !gjson.ValidBytes(data) {
		return nil, &InvalidBlocksError{Reason: "not valid JSON"}
	}

	rsp := gjson.ParseBytes(data)

	if !rsp.IsArray() {
		return nil, &InvalidBlocksError{Reason: "expected a JSON array"}
	}

	items := rsp.Array()

	if len(items) == 0 {
		return nil, &InvalidBlocksError{Reason: "blocks array is empty"}
	}

	if len(items) > MaxBlocks {
		return nil, &InvalidBlocksError{Reason: fmt.Sprintf("too many blocks (max %d)", MaxBlocks)}
	}

	blocks := make([]json.RawMessage, len(items))

	for idx, item := range items {

		if !item.IsObject() {
			return nil, &InvalidBlocksError{Reason: "each block must be a JSON object"}
		}

		blocks[idx] = json.RawMessage(item.Raw)
	}

	return blocks, nil
}
