// Package workbook builds fill-in-the-blank study sheets from loaded rows.
package workbook

import (
	"fmt"
	"math/rand/v2"

	"github.com/ahrism10M501/voca/internal/fileformat"
	"github.com/ahrism10M501/voca/internal/models"
)

type Kind string

const (
	// KindKo shows the meanings and blanks the word.
	KindKo Kind = "ko"
	// KindEn shows the word and blanks the meanings.
	KindEn Kind = "en"
	// KindBoth picks per item; Ratio is the chance of showing the meanings.
	KindBoth Kind = "both"
)

const DefaultBlank = "_____"

// MeaningSep joins the meanings of one word on a sheet.
const MeaningSep = ", "

type Template struct {
	Kind    Kind
	Ratio   float64
	Blank   string
	Limit   int
	Shuffle bool
	Seed    uint64
}

// Workbook holds the questions and, in the same order, their answers.
type Workbook struct {
	Questions []models.Pair
	Answers   []models.Pair
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindKo, KindEn, KindBoth:
		return k, nil
	}
	return "", fmt.Errorf("unknown workbook kind %q (want ko, en or both)", s)
}

// Make groups rows by word and blanks one side of every group. The same
// seed always yields the same sheet.
func (t Template) Make(rows []models.Row) (*Workbook, error) {
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return nil, err
	}
	if t.Ratio < 0 || t.Ratio > 1 {
		return nil, fmt.Errorf("ratio %v out of [0, 1]", t.Ratio)
	}
	blank := t.Blank
	if blank == "" {
		blank = DefaultBlank
	}

	rng := rand.New(rand.NewPCG(t.Seed, t.Seed))
	groups := models.GroupRows(rows)
	if t.Shuffle {
		rng.Shuffle(len(groups), func(i, j int) { groups[i], groups[j] = groups[j], groups[i] })
	}
	if t.Limit > 0 && t.Limit < len(groups) {
		groups = groups[:t.Limit]
	}

	wb := &Workbook{
		Questions: make([]models.Pair, 0, len(groups)),
		Answers:   make([]models.Pair, 0, len(groups)),
	}
	for _, g := range groups {
		if len(g.Meanings) == 0 {
			continue
		}
		full := g.Pair(MeaningSep)

		showMeaning := t.Kind == KindKo || (t.Kind == KindBoth && rng.Float64() < t.Ratio)
		q := models.Pair{Word: g.Word, Meaning: blank}
		if showMeaning {
			q = models.Pair{Word: full.Meaning, Meaning: blank}
		}
		wb.Questions = append(wb.Questions, q)
		wb.Answers = append(wb.Answers, full)
	}
	return wb, nil
}

// Save writes the questions to path in the format its extension selects.
func (w *Workbook) Save(path string) error {
	return fileformat.Dump(path, w.Questions)
}

// SaveAnswers writes the answer key to path.
func (w *Workbook) SaveAnswers(path string) error {
	return fileformat.Dump(path, w.Answers)
}
