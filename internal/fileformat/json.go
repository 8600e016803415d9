package fileformat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ahrism10M501/voca/internal/models"
)

// entry is the record shape shared by the JSON, XML and YAML codecs.
type entry struct {
	Word    string `json:"word" yaml:"word" xml:"word,attr"`
	Meaning string `json:"meaning" yaml:"meaning" xml:"meaning,attr"`
}

func toEntries(pairs []models.Pair) []entry {
	out := make([]entry, len(pairs))
	for i, p := range pairs {
		out[i] = entry{Word: p.Word, Meaning: p.Meaning}
	}
	return out
}

func fromEntries(entries []entry) ([]models.Pair, error) {
	var pairs []models.Pair
	for i, e := range entries {
		var err error
		if pairs, err = expand(pairs, e.Word, e.Meaning, fmt.Sprintf("element %d", i)); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

type jsonCodec struct{}

func (jsonCodec) Load(r io.Reader) ([]models.Pair, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return fromEntries(entries)
}

func (jsonCodec) Dump(w io.Writer, pairs []models.Pair) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(toEntries(pairs))
}
