package db

import (
	"encoding/json"
	"fmt"
)

// encodePayload serializes the pinyin and definitions of a WordDef into the
// text stored in word_def.data: a JSON array holding exactly two string
// arrays, e.g. [["Zhong1","guo2"],["China","country"]].
func encodePayload(pinyin, defs []string) (string, error) {
	if pinyin == nil {
		pinyin = []string{}
	}
	if defs == nil {
		defs = []string{}
	}
	b, err := json.Marshal([2][]string{pinyin, defs})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodePayload(data string) (pinyin, defs []string, err error) {
	var pair [][]string
	if err := json.Unmarshal([]byte(data), &pair); err != nil {
		return nil, nil, err
	}
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("expected 2 arrays, got %d", len(pair))
	}
	return pair[0], pair[1], nil
}
