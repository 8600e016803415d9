package fileformat

import (
	"fmt"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/models"
	"golang.org/x/text/unicode/norm"
)

// SplitMeanings splits a meaning field on ',' or ';'. Each alternative is
// whitespace-collapsed and NFC-normalised; blank ones are dropped.
func SplitMeanings(field string) []string {
	parts := strings.FieldsFunc(field, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = clean(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clean(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// expand turns one on-disk record into one pair per alternative meaning.
func expand(dst []models.Pair, word, field string, where string) ([]models.Pair, error) {
	w := clean(word)
	if w == "" {
		return nil, fmt.Errorf("%w: empty word at %s", common.ErrInvalidShape, where)
	}
	for _, m := range SplitMeanings(field) {
		dst = append(dst, models.Pair{Word: w, Meaning: m})
	}
	return dst, nil
}
