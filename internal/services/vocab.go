// Package services contains the vocabulary use cases driven by the CLI.
// Every method runs inside exactly one repository scope, so a failure
// leaves the store as it was before the call.
package services

import (
	"context"
	"fmt"

	"github.com/ahrism10M501/voca/internal/fileformat"
	"github.com/ahrism10M501/voca/internal/filex"
	"github.com/ahrism10M501/voca/internal/logging"
	"github.com/ahrism10M501/voca/internal/models"
	"github.com/ahrism10M501/voca/internal/query"
	"github.com/ahrism10M501/voca/internal/repositories/vocab"
	"github.com/ahrism10M501/voca/internal/workbook"
)

// Scoper runs fn against a store with commit-or-rollback semantics.
// *repomanager.Manager satisfies it.
type Scoper interface {
	Scope(ctx context.Context, fn func(ctx context.Context, store vocab.Store) error) error
}

// Stats summarizes the store contents.
type Stats struct {
	Words    int
	Meanings int
}

type VocabService struct {
	repo   Scoper
	levels models.Levels
	log    logging.Logger
}

func NewVocabService(repo Scoper, levels models.Levels, log logging.Logger) *VocabService {
	return &VocabService{repo: repo, levels: levels, log: log}
}

// Import loads the file at path and stores its pairs with the given level
// and day. It returns the number of pairs read from the file.
func (s *VocabService) Import(ctx context.Context, path string, level models.Level, day int) (int, error) {
	pairs, err := fileformat.Load(path)
	if err != nil {
		return 0, err
	}
	err = s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		return store.Dump(ctx, pairs, level, day)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", path, err)
	}
	s.log.Info(ctx, "imported", "path", path, "pairs", len(pairs), "level", s.levels.Name(level), "day", day)
	return len(pairs), nil
}

// Export writes the pairs matching cond to path. With grouped set, the
// meanings of one word are joined on a single entry.
func (s *VocabService) Export(ctx context.Context, path string, grouped bool, cond query.Condition) (int, error) {
	var pairs []models.Pair
	err := s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		recs, err := store.Find(ctx, cond, "word", "meaning")
		if err != nil {
			return err
		}
		pairs = make([]models.Pair, 0, len(recs))
		for _, r := range recs {
			pairs = append(pairs, models.Pair{Word: r.String("word"), Meaning: r.String("meaning")})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if grouped {
		pairs = models.JoinGroups(models.GroupPairs(pairs), workbook.MeaningSep)
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return 0, err
	}
	if err := fileformat.Dump(path, pairs); err != nil {
		return 0, err
	}
	s.log.Info(ctx, "exported", "path", path, "entries", len(pairs))
	return len(pairs), nil
}

// Workbook renders a study sheet from the rows matching cond and saves the
// questions to path. When answers is not empty the answer key is saved there.
func (s *VocabService) Workbook(ctx context.Context, path, answers string, tmpl workbook.Template, cond query.Condition) (*workbook.Workbook, error) {
	rows, err := s.rows(ctx, cond, "")
	if err != nil {
		return nil, err
	}
	wb, err := tmpl.Make(rows)
	if err != nil {
		return nil, err
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	if err := wb.Save(path); err != nil {
		return nil, err
	}
	if answers != "" {
		if err := filex.EnsureParentDir(answers); err != nil {
			return nil, err
		}
		if err := wb.SaveAnswers(answers); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

func (s *VocabService) rows(ctx context.Context, cond query.Condition, orderBy string) ([]models.Row, error) {
	var rows []models.Row
	err := s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		recs, err := store.FindOrdered(ctx, cond, orderBy)
		if err != nil {
			return err
		}
		rows = make([]models.Row, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, recordRow(r))
		}
		return nil
	})
	return rows, err
}

func recordRow(r models.Record) models.Row {
	return models.Row{
		WordID:    r.Int("word_id"),
		Word:      r.String("word"),
		Day:       int(r.Int("day")),
		Level:     models.Level(r.Int("level")),
		MeaningID: r.Int("meaning_id"),
		Meaning:   r.String("meaning"),
	}
}

// List returns the joined rows matching cond. A non-empty orderBy sorts by
// that column; otherwise rows come in insertion order.
func (s *VocabService) List(ctx context.Context, cond query.Condition, orderBy string) ([]models.Row, error) {
	return s.rows(ctx, cond, orderBy)
}

func (s *VocabService) Delete(ctx context.Context, cond query.Condition) (bool, error) {
	var deleted bool
	err := s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		var err error
		deleted, err = store.Delete(ctx, cond)
		return err
	})
	return deleted, err
}

func (s *VocabService) Update(ctx context.Context, cond query.Condition, data map[string]any) (bool, error) {
	var changed bool
	err := s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		var err error
		changed, err = store.Update(ctx, cond, data)
		return err
	})
	return changed, err
}

func (s *VocabService) UpdateByWord(ctx context.Context, word, column string, value any, index int) error {
	return s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		return store.UpdateByWord(ctx, word, column, value, index)
	})
}

func (s *VocabService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.repo.Scope(ctx, func(ctx context.Context, store vocab.Store) error {
		var err error
		st.Words, st.Meanings, err = store.Count(ctx)
		return err
	})
	return st, err
}
