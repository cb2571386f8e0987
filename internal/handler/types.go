package handler

import (
	"encoding/json"
	"errors"
	"strings"
)

// category_id は1件の文字列でも配列でも受け付ける
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*l = ids
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return errors.New("category_id must be a string or an array of strings")
	}
	*l = idList{id}
	return nil
}
