// Package models holds the vocabulary data types shared by the store,
// the file codecs and the workbook generator.
package models

import (
	"fmt"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
)

type Word struct {
	WordID int64
	Word   string
	Day    int
	Level  Level
}

type Meaning struct {
	MeaningID int64
	WordID    int64
	Meaning   string
}

// Pair is the (word, meaning) interchange tuple used by every codec and by Dump.
type Pair struct {
	Word    string
	Meaning string
}

// Row is a point-in-time snapshot of one word joined with one of its meanings.
type Row struct {
	WordID    int64
	Word      string
	Day       int
	Level     Level
	MeaningID int64
	Meaning   string
}

func (r Row) Pair() Pair {
	return Pair{Word: r.Word, Meaning: r.Meaning}
}

// Record is a projection of the joined row keyed by column name.
// Integer columns hold int64, text columns hold string.
type Record map[string]any

func (r Record) String(col string) string {
	s, _ := r[col].(string)
	return s
}

func (r Record) Int(col string) int64 {
	n, _ := r[col].(int64)
	return n
}

// NewPairs converts loosely shaped input into pairs. Every element must have
// exactly two fields and a non-blank word, otherwise nothing is returned.
func NewPairs(raw [][]string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(raw))
	for i, r := range raw {
		if len(r) != 2 {
			return nil, fmt.Errorf("%w: element %d has %d fields, want 2", common.ErrInvalidShape, i, len(r))
		}
		pairs = append(pairs, Pair{Word: r[0], Meaning: r[1]})
	}
	if err := ValidatePairs(pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// ValidatePairs rejects the whole slice if any pair has a blank word.
func ValidatePairs(pairs []Pair) error {
	for i, p := range pairs {
		if strings.TrimSpace(p.Word) == "" {
			return fmt.Errorf("%w: element %d has an empty word", common.ErrInvalidShape, i)
		}
	}
	return nil
}
