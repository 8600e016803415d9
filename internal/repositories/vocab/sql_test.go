package vocab

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/dbx"
	"github.com/ahrism10M501/voca/internal/models"
	"github.com/ahrism10M501/voca/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE words (
  word_id INTEGER PRIMARY KEY AUTOINCREMENT,
  word TEXT NOT NULL UNIQUE,
  day INTEGER NOT NULL DEFAULT 0,
  level INTEGER NOT NULL DEFAULT 5
);
CREATE TABLE meanings (
  meaning_id INTEGER PRIMARY KEY AUTOINCREMENT,
  word_id INTEGER NOT NULL REFERENCES words(word_id),
  meaning TEXT NOT NULL,
  UNIQUE (word_id, meaning)
);
`

var scenarioA = []models.Pair{
	{Word: "confidence", Meaning: "확신"},
	{Word: "confidence", Meaning: "신임"},
	{Word: "prospective", Meaning: "미래의"},
}

func setupStore(t *testing.T) (*SQLStore, *dbx.Conn) {
	t.Helper()
	ctx := context.Background()

	conn := dbx.NewConn("sqlite", filepath.Join(t.TempDir(), "vocab.db"))
	require.NoError(t, conn.Connect(ctx))
	t.Cleanup(func() {
		if conn.Connected() {
			_ = conn.Close()
		}
	})

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	_, err = cur.ExecContext(ctx, testSchema)
	require.NoError(t, err)
	require.NoError(t, conn.Commit())

	return NewSQLStore(conn, SQLite(), nil), conn
}

func counts(t *testing.T, s *SQLStore) (int, int) {
	t.Helper()
	w, m, err := s.Count(context.Background())
	require.NoError(t, err)
	return w, m
}

func TestDump_ScenarioA(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	rows, err := s.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, models.Intermediate, r.Level)
		assert.Equal(t, 1, r.Day)
	}

	groups := models.GroupRows(rows)
	byWord := map[string][]string{}
	for _, g := range groups {
		byWord[g.Word] = g.Meanings
	}
	assert.ElementsMatch(t, []string{"확신", "신임"}, byWord["confidence"])
	assert.Equal(t, []string{"미래의"}, byWord["prospective"])
}

func TestDelete_ScenarioB(t *testing.T) {
	s, conn := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	recs, err := s.Find(ctx, query.Condition{"word": "confidence"}, "word_id")
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	deletedID := recs[0].Int("word_id")

	ok, err := s.Delete(ctx, query.Condition{"word": "confidence"})
	require.NoError(t, err)
	require.True(t, ok)

	rows, err := s.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "prospective", rows[0].Word)

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	var orphans int
	require.NoError(t, cur.QueryRowContext(ctx, `SELECT COUNT(*) FROM meanings WHERE word_id = ?`, deletedID).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestDump_ScenarioC_DuplicatePairOnce(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	pair := []models.Pair{{Word: "apple", Meaning: "사과"}}

	require.NoError(t, s.Dump(ctx, pair, models.Beginner, 1))
	require.NoError(t, s.Dump(ctx, pair, models.Beginner, 1))

	w, m := counts(t, s)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, m)
}

func TestDump_Idempotent(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Dump(ctx, scenarioA, models.Advanced, 2))
	first, err := s.Load(ctx, "meaning_id")
	require.NoError(t, err)

	require.NoError(t, s.Dump(ctx, scenarioA, models.Advanced, 2))
	second, err := s.Load(ctx, "meaning_id")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDump_LevelAndDayKeptFromFirstInsert(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "apple", Meaning: "사과"}}, models.Beginner, 1))
	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "apple", Meaning: "과일"}}, models.Native, 9))

	rows, err := s.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, models.Beginner, r.Level)
		assert.Equal(t, 1, r.Day)
	}
}

func TestDump_DropsEmptyMeanings(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "ghost", Meaning: "  "}, {Word: "apple", Meaning: "사과"}}, models.Beginner, 1))

	w, m := counts(t, s)
	assert.Equal(t, 1, w, "a word without any meaning must not be created")
	assert.Equal(t, 1, m)
}

func TestDump_InvalidShapeTouchesNothing(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	err := s.Dump(ctx, []models.Pair{{Word: "apple", Meaning: "사과"}, {Word: "", Meaning: "x"}}, models.Beginner, 1)
	require.ErrorIs(t, err, common.ErrInvalidShape)

	w, m := counts(t, s)
	assert.Zero(t, w)
	assert.Zero(t, m)
}

func TestDump_LargeBatch(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	var pairs []models.Pair
	for i := 0; i < batchSize*2+7; i++ {
		w := "w" + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26)) + string(rune('a'+i/676))
		pairs = append(pairs, models.Pair{Word: w, Meaning: "m1"}, models.Pair{Word: w, Meaning: "m2"})
	}
	require.NoError(t, s.Dump(ctx, pairs, models.Beginner, 1))

	w, m := counts(t, s)
	assert.Equal(t, batchSize*2+7, w)
	assert.Equal(t, 2*(batchSize*2+7), m)
}

func TestFind_ConditionCorrectness(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))
	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "apple", Meaning: "사과"}, {Word: "apple", Meaning: "과일"}}, models.Beginner, 2))

	recs, err := s.Find(ctx, query.Condition{"word": "apple"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "apple", r.String("word"))
		assert.Equal(t, int64(2), r.Int("day"))
	}

	recs, err = s.Find(ctx, query.Condition{"word_id": []int64{1, 2}}, "word_id", "meaning")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Contains(t, []int64{1, 2}, r.Int("word_id"))
		assert.Len(t, r, 2)
	}

	recs, err = s.Find(ctx, query.Condition{"word_id": []int64{}})
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = s.Find(ctx, nil, "word")
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestFind_ByMeaningAndLevel(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	recs, err := s.Find(ctx, query.Condition{"meaning": "신임", "level": int(models.Intermediate)}, "word")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "confidence", recs[0].String("word"))
}

func TestColumnValidation_NoMutation(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))
	before, err := s.Load(ctx, "meaning_id")
	require.NoError(t, err)

	_, err = s.Find(ctx, query.Condition{"bogus_col": 1})
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.Find(ctx, nil, "word", "bogus_col")
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.Update(ctx, query.Condition{"word": "confidence"}, map[string]any{"bogus_col": 1})
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.Update(ctx, query.Condition{"bogus_col": 1}, map[string]any{"day": 3})
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.Delete(ctx, query.Condition{"bogus_col": 1})
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.Load(ctx, "bogus_col")
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	after, err := s.Load(ctx, "meaning_id")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoad_OrderBy(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "zebra", Meaning: "얼룩말"}}, models.Beginner, 3))
	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "apple", Meaning: "사과"}}, models.Beginner, 1))

	rows, err := s.Load(ctx, "word")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "apple", rows[0].Word)
	assert.Equal(t, "zebra", rows[1].Word)
}

func TestFindOrdered_WithCondition(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))
	cond := query.Condition{"word": []any{"confidence", "prospective"}}

	recs, err := s.FindOrdered(ctx, cond, "meaning", "meaning")
	require.NoError(t, err)
	got := make([]string, 0, len(recs))
	for _, r := range recs {
		got = append(got, r.String("meaning"))
	}
	assert.Equal(t, []string{"미래의", "신임", "확신"}, got)

	recs, err = s.FindOrdered(ctx, cond, "", "meaning")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "확신", recs[0].String("meaning"))

	_, err = s.FindOrdered(ctx, cond, "bogus_col")
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.FindOrdered(ctx, cond, "word; DROP TABLE words")
	require.ErrorIs(t, err, common.ErrInvalidColumn)
}

func TestDump_OutOfRangeLevelStoredAsUnknown(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "odd", Meaning: "이상한"}}, models.Level(42), 1))
	require.NoError(t, s.Dump(ctx, []models.Pair{{Word: "neg", Meaning: "음수"}}, models.Level(-1), 1))

	recs, err := s.Find(ctx, nil, "level")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, int64(models.Unknown), r.Int("level"))
	}
}

func TestUpdate_AppliesPerTable(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	ok, err := s.Update(ctx, query.Condition{"word": "prospective"}, map[string]any{
		"level":   int(models.Advanced),
		"meaning": "장래의",
	})
	require.NoError(t, err)
	require.True(t, ok)

	recs, err := s.Find(ctx, query.Condition{"word": "prospective"}, "level", "meaning")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(models.Advanced), recs[0].Int("level"))
	assert.Equal(t, "장래의", recs[0].String("meaning"))

	// untouched
	recs, err = s.Find(ctx, query.Condition{"word": "confidence"}, "level")
	require.NoError(t, err)
	for _, r := range recs {
		assert.Equal(t, int64(models.Intermediate), r.Int("level"))
	}
}

func TestUpdate_ConditionOnMeaningStillHitsWord(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	ok, err := s.Update(ctx, query.Condition{"meaning": "미래의"}, map[string]any{"meaning": "장래의", "day": 5})
	require.NoError(t, err)
	require.True(t, ok)

	recs, err := s.Find(ctx, query.Condition{"word": "prospective"}, "day", "meaning")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(5), recs[0].Int("day"))
	assert.Equal(t, "장래의", recs[0].String("meaning"))
}

func TestUpdate_SkipsUnknownAlongsideKnown(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	ok, err := s.Update(ctx, query.Condition{"word": "confidence"}, map[string]any{"bogus_col": 1, "day": 7})
	require.NoError(t, err)
	require.True(t, ok)

	recs, err := s.Find(ctx, query.Condition{"word": "confidence"}, "day")
	require.NoError(t, err)
	for _, r := range recs {
		assert.Equal(t, int64(7), r.Int("day"))
	}
}

func TestUpdate_IdentityAndSeparator(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, nil, map[string]any{"word_id": 9})
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	_, err = s.Update(ctx, nil, map[string]any{"day; DROP TABLE words": 1, "day": 1})
	require.ErrorIs(t, err, common.ErrInvalidColumn)
}

func TestUpdate_NoMatch(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	ok, err := s.Update(ctx, query.Condition{"word": "missing"}, map[string]any{"day": 2})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_NoMatchReturnsFalse(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	ok, err := s.Delete(ctx, query.Condition{"word": "missing"})
	require.NoError(t, err)
	assert.False(t, ok)

	w, m := counts(t, s)
	assert.Equal(t, 2, w)
	assert.Equal(t, 3, m)
}

func TestDelete_ByMeaningRemovesWholeWord(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	ok, err := s.Delete(ctx, query.Condition{"meaning": "확신"})
	require.NoError(t, err)
	require.True(t, ok)

	w, m := counts(t, s)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, m, "every meaning of the deleted word must go")
}

func TestUpdateByWord(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Dump(ctx, scenarioA, models.Intermediate, 1))

	require.NoError(t, s.UpdateByWord(ctx, "confidence", "meaning", "자신감", 1))
	got, err := s.Meanings(ctx, "confidence")
	require.NoError(t, err)
	assert.Equal(t, []string{"확신", "자신감"}, got)

	require.NoError(t, s.UpdateByWord(ctx, "confidence", "level", int(models.Native), 0))
	recs, err := s.Find(ctx, query.Condition{"word": "confidence"}, "level")
	require.NoError(t, err)
	assert.Equal(t, int64(models.Native), recs[0].Int("level"))

	err = s.UpdateByWord(ctx, "missing", "day", 1, 0)
	require.ErrorIs(t, err, common.ErrNotFound)

	err = s.UpdateByWord(ctx, "confidence", "meaning", "x", 5)
	require.ErrorIs(t, err, common.ErrNotFound)

	err = s.UpdateByWord(ctx, "confidence", "bogus_col", 1, 0)
	require.ErrorIs(t, err, common.ErrInvalidColumn)

	err = s.UpdateByWord(ctx, "confidence", "meaning_id", 1, 0)
	require.ErrorIs(t, err, common.ErrInvalidColumn)
}

func TestMeanings_NotFound(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Meanings(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_NotConnectedAfterClose(t *testing.T) {
	s, conn := setupStore(t)
	ctx := context.Background()
	require.NoError(t, conn.Close())

	require.ErrorIs(t, s.Dump(ctx, scenarioA, models.Beginner, 1), common.ErrNotConnected)
	_, err := s.Load(ctx, "")
	require.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.Find(ctx, nil)
	require.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.Update(ctx, nil, map[string]any{"day": 1})
	require.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.Delete(ctx, nil)
	require.ErrorIs(t, err, common.ErrNotConnected)
	_, _, err = s.Count(ctx)
	require.ErrorIs(t, err, common.ErrNotConnected)
}

func TestStore_ErrorWrapping(t *testing.T) {
	s, conn := setupStore(t)
	ctx := context.Background()

	cur, err := conn.Cursor(ctx)
	require.NoError(t, err)
	_, err = cur.ExecContext(ctx, `DROP TABLE meanings`)
	require.NoError(t, err)

	_, err = s.Load(ctx, "")
	require.ErrorIs(t, err, common.ErrStore)
	require.Contains(t, err.Error(), "failed to load rows")
}
