package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahrism10M501/voca/internal/query"
	"github.com/ahrism10M501/voca/internal/schema"
)

// splitAssignment splits "column=value". The column is trimmed; the value
// is kept as typed.
func splitAssignment(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected column=value, got %q", s)
	}
	return k, v, nil
}

// value converts a raw flag value for column. Level names are accepted for
// the level column and text columns keep the raw string. Otherwise anything
// that parses as an integer is bound as one.
func (a *App) value(column, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if col, err := schema.Default().Lookup(column); err == nil && col.Kind == schema.Text {
		return raw, nil
	}
	if column == "level" {
		l, err := a.levels.Parse(raw)
		if err != nil {
			return nil, err
		}
		return int(l), nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	return raw, nil
}

// condition builds a query condition from --where flags. Comma-separated
// values become membership lists.
func (a *App) condition(items []string) (query.Condition, error) {
	cond := query.Condition{}
	for _, it := range items {
		k, raw, err := splitAssignment(it)
		if err != nil {
			return nil, err
		}
		if !strings.Contains(raw, ",") {
			v, err := a.value(k, raw)
			if err != nil {
				return nil, err
			}
			cond[k] = v
			continue
		}
		var list []any
		for _, part := range strings.Split(raw, ",") {
			v, err := a.value(k, part)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		cond[k] = list
	}
	return cond, nil
}

// assignments builds the data map from --set flags.
func (a *App) assignments(items []string) (map[string]any, error) {
	data := make(map[string]any, len(items))
	for _, it := range items {
		k, raw, err := splitAssignment(it)
		if err != nil {
			return nil, err
		}
		v, err := a.value(k, raw)
		if err != nil {
			return nil, err
		}
		data[k] = v
	}
	return data, nil
}
