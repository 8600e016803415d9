// Package fileformat reads and writes (word, meaning) pair lists in the
// supported flat-file formats. The codec is picked by file extension.
package fileformat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/models"
)

// Codec converts between an on-disk representation and pairs.
//
// Load splits every meaning field into its alternatives, so one record may
// yield several pairs. Dump writes the pairs as given and never merges
// pairs that share a word.
type Codec interface {
	Load(r io.Reader) ([]models.Pair, error)
	Dump(w io.Writer, pairs []models.Pair) error
}

var codecs = map[string]Codec{
	".txt":  textCodec{},
	".csv":  csvCodec{},
	".json": jsonCodec{},
	".xml":  xmlCodec{},
	".yaml": yamlCodec{},
	".yml":  yamlCodec{},
}

// ForPath returns the codec registered for path's extension.
func ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	return c, nil
}

// Extensions lists the supported suffixes, sorted.
func Extensions() []string {
	out := make([]string, 0, len(codecs))
	for ext := range codecs {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Load reads the pairs stored at path.
func Load(path string) ([]models.Pair, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := c.Load(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return pairs, nil
}

// Dump validates pairs and writes them to path, replacing any existing file.
// Nothing is written when validation fails.
func Dump(path string, pairs []models.Pair) error {
	c, err := ForPath(path)
	if err != nil {
		return err
	}
	if err := models.ValidatePairs(pairs); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.Dump(&buf, pairs); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
