package fileformat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/models"
)

var csvHeader = []string{"word", "meaning"}

type csvCodec struct{}

func (csvCodec) Load(r io.Reader) ([]models.Pair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var pairs []models.Pair
	for rec := 1; ; rec++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if rec == 1 {
			fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
			if isHeader(fields) {
				continue
			}
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: record %d has %d field(s)", common.ErrInvalidShape, rec, len(fields))
		}
		// unquoted alternatives spill into extra fields
		meaning := strings.Join(fields[1:], ",")
		if pairs, err = expand(pairs, fields[0], meaning, fmt.Sprintf("record %d", rec)); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

func (csvCodec) Dump(w io.Writer, pairs []models.Pair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{p.Word, p.Meaning}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func isHeader(fields []string) bool {
	return len(fields) == 2 &&
		strings.EqualFold(strings.TrimSpace(fields[0]), csvHeader[0]) &&
		strings.EqualFold(strings.TrimSpace(fields[1]), csvHeader[1])
}
