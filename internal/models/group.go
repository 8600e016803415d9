package models

import (
	"slices"
	"strings"
)

// Group is one word with all of its meanings.
type Group struct {
	Word     string
	Meanings []string
}

// Pair joins the meanings with sep into a single pair.
func (g Group) Pair(sep string) Pair {
	return Pair{Word: g.Word, Meaning: strings.Join(g.Meanings, sep)}
}

// GroupPairs folds a flat pair sequence into groups, keeping first-seen
// order of words and of meanings. Repeated meanings are kept once.
func GroupPairs(pairs []Pair) []Group {
	idx := make(map[string]int, len(pairs))
	var groups []Group
	for _, p := range pairs {
		i, ok := idx[p.Word]
		if !ok {
			i = len(groups)
			idx[p.Word] = i
			groups = append(groups, Group{Word: p.Word})
		}
		if p.Meaning == "" || slices.Contains(groups[i].Meanings, p.Meaning) {
			continue
		}
		groups[i].Meanings = append(groups[i].Meanings, p.Meaning)
	}
	return groups
}

func GroupRows(rows []Row) []Group {
	pairs := make([]Pair, len(rows))
	for i, r := range rows {
		pairs[i] = r.Pair()
	}
	return GroupPairs(pairs)
}

// JoinGroups turns groups back into one pair per word.
func JoinGroups(groups []Group, sep string) []Pair {
	out := make([]Pair, len(groups))
	for i, g := range groups {
		out[i] = g.Pair(sep)
	}
	return out
}
