package fileformat

import (
	"errors"
	"io"

	"github.com/ahrism10M501/voca/internal/models"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) Load(r io.Reader) ([]models.Pair, error) {
	var entries []entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return fromEntries(entries)
}

func (yamlCodec) Dump(w io.Writer, pairs []models.Pair) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toEntries(pairs)); err != nil {
		return err
	}
	return enc.Close()
}
