package fileformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/models"
)

// textCodec handles "word:meaning1,meaning2" lines.
type textCodec struct{}

func (textCodec) Load(r io.Reader) ([]models.Pair, error) {
	var pairs []models.Pair
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := sc.Text()
		if line == 1 {
			s = strings.TrimPrefix(s, "\ufeff")
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		word, meanings, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no ':'", common.ErrInvalidShape, line)
		}
		var err error
		if pairs, err = expand(pairs, word, meanings, fmt.Sprintf("line %d", line)); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// Dump refuses words containing ':' and line breaks anywhere, since those
// lines would load back as different pairs.
func (textCodec) Dump(w io.Writer, pairs []models.Pair) error {
	for i, p := range pairs {
		if strings.ContainsAny(p.Word, ":\r\n") {
			return fmt.Errorf("%w: element %d: word %q cannot be written as text", common.ErrInvalidShape, i, p.Word)
		}
		if strings.ContainsAny(p.Meaning, "\r\n") {
			return fmt.Errorf("%w: element %d: meaning of %q spans lines", common.ErrInvalidShape, i, p.Word)
		}
	}
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(bw, "%s:%s\n", p.Word, p.Meaning); err != nil {
			return err
		}
	}
	return bw.Flush()
}
