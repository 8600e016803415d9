package fileformat

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/ahrism10M501/voca/internal/models"
)

type xmlDocument struct {
	XMLName xml.Name `xml:"data"`
	Rows    []entry  `xml:"row"`
}

type xmlCodec struct{}

func (xmlCodec) Load(r io.Reader) ([]models.Pair, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return fromEntries(doc.Rows)
}

func (xmlCodec) Dump(w io.Writer, pairs []models.Pair) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(xmlDocument{Rows: toEntries(pairs)}); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
