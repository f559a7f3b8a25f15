package usecase

import (
	"errors"

	"github.com/user/openperf-gateway/internal/entity"
)

var errNoValue = errors.New("no non-empty value under any known field name")

// pageIDFields are the spellings the engine has used for the assigned page
// id, in lookup order.
var pageIDFields = []string{"page_id", "pageId"}

// FirstNonEmpty returns the first non-empty string stored under one of keys,
// checked in order. Non-string values are skipped.
func FirstNonEmpty(p entity.Payload, keys ...string) (string, error) {
	for _, key := range keys {
		if s, ok := p[key].(string); ok && s != "" {
			return s, nil
		}
	}
	return "", errNoValue
}
