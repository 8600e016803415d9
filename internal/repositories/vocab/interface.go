package vocab

import (
	"context"

	"github.com/ahrism10M501/voca/internal/dbx"
	"github.com/ahrism10M501/voca/internal/models"
	"github.com/ahrism10M501/voca/internal/query"
)

// Store describes the vocabulary operations available inside a repository scope.
type Store interface {
	// Dump inserts pairs with the given level and day, ignoring words and
	// (word, meaning) combinations that already exist. Pairs with an empty
	// meaning are dropped.
	Dump(ctx context.Context, pairs []models.Pair, level models.Level, day int) error

	// Load returns every joined row, ordered by orderBy when it is not empty.
	Load(ctx context.Context, orderBy string) ([]models.Row, error)

	// Find returns the joined rows matching cond, projected onto columns
	// (every column when none are given).
	Find(ctx context.Context, cond query.Condition, columns ...string) ([]models.Record, error)

	// FindOrdered is Find sorted by orderBy, with insertion order breaking
	// ties. An empty orderBy behaves like Find; an unknown one fails with
	// common.ErrInvalidColumn before any query runs.
	FindOrdered(ctx context.Context, cond query.Condition, orderBy string, columns ...string) ([]models.Record, error)

	// Update sets each data column on the rows matching cond and reports
	// whether any row changed.
	Update(ctx context.Context, cond query.Condition, data map[string]any) (bool, error)

	// UpdateByWord sets column for one word. For a meanings column, index
	// picks which of the word's meanings (in insertion order) is changed.
	UpdateByWord(ctx context.Context, word, column string, value any, index int) error

	// Delete removes the words matching cond together with all of their
	// meanings. It returns false when nothing matched.
	Delete(ctx context.Context, cond query.Condition) (bool, error)

	// Meanings returns the meanings of word in insertion order.
	Meanings(ctx context.Context, word string) ([]string, error)

	// Count returns the number of stored words and meanings.
	Count(ctx context.Context) (words, meanings int, err error)
}

// Connection hands out the live query handle. *dbx.Conn satisfies it.
type Connection interface {
	Cursor(ctx context.Context) (dbx.DBTX, error)
}
