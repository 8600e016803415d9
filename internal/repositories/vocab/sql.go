package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/dbx"
	"github.com/ahrism10M501/voca/internal/logging"
	"github.com/ahrism10M501/voca/internal/models"
	"github.com/ahrism10M501/voca/internal/query"
	"github.com/ahrism10M501/voca/internal/schema"
)

// batchSize bounds rows per multi-row statement so the bound-parameter
// count stays below SQLite's limit.
const batchSize = 400

const (
	innerJoin = "words JOIN meanings ON meanings.word_id = words.word_id"
	leftJoin  = "words LEFT JOIN meanings ON meanings.word_id = words.word_id"
)

// SQLStore implements Store on top of a Connection.
type SQLStore struct {
	conn Connection
	d    Dialect
	qb   *query.Builder
	log  logging.Logger
}

// NewSQLStore returns a store issuing d-flavoured SQL through conn.
func NewSQLStore(conn Connection, d Dialect, log logging.Logger) *SQLStore {
	if log == nil {
		log = logging.NewNop()
	}
	return &SQLStore{
		conn: conn,
		d:    d,
		qb:   query.NewBuilder(schema.Default(), d.Placeholder),
		log:  log,
	}
}

func (s *SQLStore) Dump(ctx context.Context, pairs []models.Pair, level models.Level, day int) error {
	if err := models.ValidatePairs(pairs); err != nil {
		return err
	}

	type key struct{ word, meaning string }
	seen := make(map[key]struct{}, len(pairs))
	kept := make([]models.Pair, 0, len(pairs))
	var words []string
	wordSeen := make(map[string]struct{})

	for _, p := range pairs {
		w, m := strings.TrimSpace(p.Word), strings.TrimSpace(p.Meaning)
		if m == "" {
			continue
		}
		if _, ok := seen[key{w, m}]; ok {
			continue
		}
		seen[key{w, m}] = struct{}{}
		kept = append(kept, models.Pair{Word: w, Meaning: m})
		if _, ok := wordSeen[w]; !ok {
			wordSeen[w] = struct{}{}
			words = append(words, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if !level.Valid() {
		s.log.Warn(ctx, "level out of range, storing as unknown", "level", int(level))
		level = models.Unknown
	}

	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return err
	}

	for chunk := range slices.Chunk(words, batchSize) {
		args := make([]any, 0, len(chunk)*3)
		for _, w := range chunk {
			args = append(args, w, day, int(level))
		}
		q := s.d.InsertIgnore(schema.Words, []string{"word", "day", "level"}, len(chunk))
		if _, err := db.ExecContext(ctx, q, args...); err != nil {
			return common.StoreError("insert words", err)
		}
	}

	ids, err := s.wordIDs(ctx, db, words)
	if err != nil {
		return err
	}

	rows := make([]any, 0, len(kept)*2)
	for _, p := range kept {
		id, ok := ids[p.Word]
		if !ok {
			s.log.Warn(ctx, "word id not resolved, skipping meaning", "word", p.Word)
			continue
		}
		rows = append(rows, id, p.Meaning)
	}

	for chunk := range slices.Chunk(rows, batchSize*2) {
		q := s.d.InsertIgnore(schema.Meanings, []string{"word_id", "meaning"}, len(chunk)/2)
		if _, err := db.ExecContext(ctx, q, chunk...); err != nil {
			return common.StoreError("insert meanings", err)
		}
	}

	s.log.Debug(ctx, "dumped pairs", "pairs", len(kept), "words", len(words), "level", int(level), "day", day)
	return nil
}

// wordIDs resolves word text to ids, one lookup per batch.
func (s *SQLStore) wordIDs(ctx context.Context, db dbx.DBTX, words []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(words))
	for chunk := range slices.Chunk(words, batchSize) {
		args := make([]any, len(chunk))
		for i, w := range chunk {
			args[i] = w
		}
		q := fmt.Sprintf("SELECT word_id, word FROM words WHERE word IN (%s)", s.d.List(len(chunk), 0))
		rows, err := db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, common.StoreError("resolve word ids", err)
		}
		for rows.Next() {
			var id int64
			var w string
			if err := rows.Scan(&id, &w); err != nil {
				rows.Close()
				return nil, common.StoreError("scan word id", err)
			}
			ids[w] = id
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, common.StoreError("resolve word ids", err)
		}
	}
	return ids, nil
}

func (s *SQLStore) Load(ctx context.Context, orderBy string) ([]models.Row, error) {
	ob, err := s.qb.OrderBy(orderBy)
	if err != nil {
		return nil, err
	}
	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	q := `SELECT words.word_id, words.word, words.day, words.level, meanings.meaning_id, meanings.meaning
		FROM ` + innerJoin + ob
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, common.StoreError("load rows", err)
	}
	defer rows.Close()

	var result []models.Row
	for rows.Next() {
		var r models.Row
		var level int
		if err := rows.Scan(&r.WordID, &r.Word, &r.Day, &level, &r.MeaningID, &r.Meaning); err != nil {
			return nil, common.StoreError("scan row", err)
		}
		r.Level = models.Level(level)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("load rows", err)
	}
	return result, nil
}

func (s *SQLStore) Find(ctx context.Context, cond query.Condition, columns ...string) ([]models.Record, error) {
	return s.FindOrdered(ctx, cond, "", columns...)
}

func (s *SQLStore) FindOrdered(ctx context.Context, cond query.Condition, orderBy string, columns ...string) ([]models.Record, error) {
	cols, err := s.qb.Columns(columns)
	if err != nil {
		return nil, err
	}
	where, err := s.qb.Where(cond, 0)
	if err != nil {
		return nil, err
	}
	order := "words.word_id, meanings.meaning_id"
	if orderBy != "" {
		col, err := s.qb.Registry().Lookup(orderBy)
		if err != nil {
			return nil, err
		}
		order = col.Qualified() + ", " + order
	}
	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Qualified()
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s",
		strings.Join(names, ", "), innerJoin, where.SQL, order)

	rows, err := db.QueryContext(ctx, q, where.Args...)
	if err != nil {
		return nil, common.StoreError("find rows", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		dest := make([]any, len(cols))
		for i, c := range cols {
			if c.Kind == schema.Int {
				dest[i] = new(int64)
			} else {
				dest[i] = new(string)
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, common.StoreError("scan row", err)
		}
		rec := make(models.Record, len(cols))
		for i, c := range cols {
			switch v := dest[i].(type) {
			case *int64:
				rec[c.Name] = *v
			case *string:
				rec[c.Name] = *v
			}
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("find rows", err)
	}
	return result, nil
}

// Update applies every resolvable data column. Unknown and identity columns
// are skipped with a warning, but at least one column must resolve.
func (s *SQLStore) Update(ctx context.Context, cond query.Condition, data map[string]any) (bool, error) {
	where, err := s.qb.Where(cond, 0)
	if err != nil {
		return false, err
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		if strings.Contains(k, ";") {
			return false, fmt.Errorf("%w: %q contains ';'", common.ErrInvalidColumn, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sets []schema.Column
	var skipped []string
	for _, k := range keys {
		col, err := s.qb.Registry().Lookup(k)
		if err != nil || col.Identity {
			skipped = append(skipped, k)
			continue
		}
		sets = append(sets, col)
	}
	if len(sets) == 0 {
		return false, fmt.Errorf("%w: no updatable column in %v", common.ErrInvalidColumn, keys)
	}
	for _, k := range skipped {
		s.log.Warn(ctx, "update skipped column", "column", k)
	}

	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return false, err
	}

	wordIDs, meaningIDs, err := s.matchIDs(ctx, db, where)
	if err != nil {
		return false, err
	}

	changed := false
	for _, col := range sets {
		ids, idCol := wordIDs, "word_id"
		if col.Table == schema.Meanings {
			ids, idCol = meaningIDs, "meaning_id"
		}
		n, err := s.updateIDs(ctx, db, col, data[col.Name], idCol, ids)
		if err != nil {
			return false, err
		}
		changed = changed || n > 0
	}
	return changed, nil
}

func (s *SQLStore) updateIDs(ctx context.Context, db dbx.DBTX, col schema.Column, value any, idCol string, ids []int64) (int64, error) {
	var total int64
	for chunk := range slices.Chunk(ids, batchSize) {
		args := make([]any, 0, len(chunk)+1)
		args = append(args, value)
		for _, id := range chunk {
			args = append(args, id)
		}
		q := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s IN (%s)",
			col.Table, col.Name, s.d.Placeholder(1), idCol, s.d.List(len(chunk), 1))
		res, err := db.ExecContext(ctx, q, args...)
		if err != nil {
			return 0, common.StoreError("update "+col.Table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, common.StoreError("get rows affected", err)
		}
		total += n
	}
	return total, nil
}

// matchIDs returns the distinct word and meaning ids matching where. Words
// without meanings are included through the left join.
func (s *SQLStore) matchIDs(ctx context.Context, db dbx.DBTX, where query.Clause) (words, meanings []int64, err error) {
	q := fmt.Sprintf("SELECT words.word_id, meanings.meaning_id FROM %s WHERE %s", leftJoin, where.SQL)
	rows, err := db.QueryContext(ctx, q, where.Args...)
	if err != nil {
		return nil, nil, common.StoreError("match rows", err)
	}
	defer rows.Close()

	seen := make(map[int64]struct{})
	for rows.Next() {
		var wid int64
		var mid sql.NullInt64
		if err := rows.Scan(&wid, &mid); err != nil {
			return nil, nil, common.StoreError("scan ids", err)
		}
		if _, ok := seen[wid]; !ok {
			seen[wid] = struct{}{}
			words = append(words, wid)
		}
		if mid.Valid {
			meanings = append(meanings, mid.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, common.StoreError("match rows", err)
	}
	return words, meanings, nil
}

func (s *SQLStore) Delete(ctx context.Context, cond query.Condition) (bool, error) {
	where, err := s.qb.Where(cond, 0)
	if err != nil {
		return false, err
	}
	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return false, err
	}

	ids, _, err := s.matchIDs(ctx, db, where)
	if err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, nil
	}

	// meanings first so no meaning ever points at a missing word
	for _, table := range []string{schema.Meanings, schema.Words} {
		for chunk := range slices.Chunk(ids, batchSize) {
			args := make([]any, len(chunk))
			for i, id := range chunk {
				args[i] = id
			}
			q := fmt.Sprintf("DELETE FROM %s WHERE word_id IN (%s)", table, s.d.List(len(chunk), 0))
			if _, err := db.ExecContext(ctx, q, args...); err != nil {
				return false, common.StoreError("delete "+table, err)
			}
		}
	}

	s.log.Debug(ctx, "deleted words", "count", len(ids))
	return true, nil
}

func (s *SQLStore) UpdateByWord(ctx context.Context, word, column string, value any, index int) error {
	col, err := s.qb.Registry().Lookup(column)
	if err != nil {
		return err
	}
	if col.Identity {
		return fmt.Errorf("%w: %q cannot be updated", common.ErrInvalidColumn, column)
	}
	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return err
	}

	wordID, err := s.wordID(ctx, db, word)
	if err != nil {
		return err
	}

	if col.Table == schema.Words {
		_, err = s.updateIDs(ctx, db, col, value, "word_id", []int64{wordID})
		return err
	}

	q := fmt.Sprintf("SELECT meaning_id FROM meanings WHERE word_id = %s ORDER BY meaning_id", s.d.Placeholder(1))
	rows, err := db.QueryContext(ctx, q, wordID)
	if err != nil {
		return common.StoreError("select meanings", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return common.StoreError("scan meaning id", err)
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return common.StoreError("select meanings", err)
	}

	if index < 0 || index >= len(ids) {
		return fmt.Errorf("%w: meaning %d of %q (has %d)", common.ErrNotFound, index, word, len(ids))
	}
	_, err = s.updateIDs(ctx, db, col, value, "meaning_id", ids[index:index+1])
	return err
}

func (s *SQLStore) wordID(ctx context.Context, db dbx.DBTX, word string) (int64, error) {
	var id int64
	q := fmt.Sprintf("SELECT word_id FROM words WHERE word = %s", s.d.Placeholder(1))
	err := db.QueryRowContext(ctx, q, word).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: word %q", common.ErrNotFound, word)
	}
	if err != nil {
		return 0, common.StoreError("get word", err)
	}
	return id, nil
}

func (s *SQLStore) Meanings(ctx context.Context, word string) ([]string, error) {
	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT meanings.meaning FROM %s WHERE words.word = %s ORDER BY meanings.meaning_id",
		innerJoin, s.d.Placeholder(1))
	rows, err := db.QueryContext(ctx, q, word)
	if err != nil {
		return nil, common.StoreError("select meanings", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, common.StoreError("scan meaning", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("select meanings", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: word %q", common.ErrNotFound, word)
	}
	return result, nil
}

func (s *SQLStore) Count(ctx context.Context) (int, int, error) {
	db, err := s.conn.Cursor(ctx)
	if err != nil {
		return 0, 0, err
	}
	var w, m int
	err = db.QueryRowContext(ctx, "SELECT (SELECT COUNT(*) FROM words), (SELECT COUNT(*) FROM meanings)").Scan(&w, &m)
	if err != nil {
		return 0, 0, common.StoreError("count rows", err)
	}
	return w, m, nil
}
