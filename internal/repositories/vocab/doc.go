// Package vocab provides the persistence layer for words and their meanings.
//
// # Overview
//
// Store is the capability set used by higher-level services: bulk dump of
// (word, meaning) pairs, the full words ⋈ meanings load, filtered find with
// projection, conditional update, cascading delete, and a few lookups by
// word. SQLStore implements it over any database/sql driver; the SQL that
// differs between engines lives in Dialect (SQLite and PostgreSQL).
//
// # Data Model
//
//	words    (word_id PK, word UNIQUE, day, level)
//	meanings (meaning_id PK, word_id FK -> words, meaning, UNIQUE(word_id, meaning))
//
// A word is created the first time one of its meanings is dumped. Deleting a
// word always deletes its meanings first, whether or not the engine cascades.
//
// # Transactions
//
// SQLStore never commits. Every statement runs on the handle returned by
// Connection.Cursor, so the caller (see repomanager.Manager.Scope) decides
// whether the work is committed or rolled back. Once the connection is closed
// every method fails with common.ErrNotConnected.
//
// # Errors
//
// Unknown columns fail with common.ErrInvalidColumn and malformed pairs with
// common.ErrInvalidShape, both before any statement is sent. Driver failures
// are wrapped with common.ErrStore.
//
// Typical Usage
//
//	store := vocab.NewSQLStore(conn, vocab.SQLite(), logger)
//	_ = store.Dump(ctx, pairs, models.Intermediate, 1)
//	rows, _ := store.Load(ctx, "word")
//	recs, _ := store.Find(ctx, query.Condition{"word_id": []int64{1, 2}}, "word", "meaning")
//	ok, _ := store.Delete(ctx, query.Condition{"word": "confidence"})
package vocab
