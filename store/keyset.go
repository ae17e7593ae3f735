// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"

	"github.com/ideafork/ideafork-api/cursor"
)

// ListParams are the paging inputs shared by every list query.
type ListParams struct {
	Sort   string
	Cursor string
	Limit  int
}

// Page is one slice of a keyset-paginated result.
type Page[T any] struct {
	Items      []T
	HasNext    bool
	NextCursor string
}

type sortKind int

const (
	kindInt sortKind = iota
	kindFloat
	kindText
)

type sortSpec[T any] struct {
	expr  string
	desc  bool
	kind  sortKind
	value func(T) any
}

type sortTable[T any] struct {
	def   string
	sorts map[string]sortSpec[T]
}

func (t sortTable[T]) resolve(name string) (string, sortSpec[T], error) {
	if name == "" {
		name = t.def
	}
	spec, ok := t.sorts[name]
	if !ok {
		return "", sortSpec[T]{}, fmt.Errorf("%w: %q", ErrInvalidSort, name)
	}
	return name, spec, nil
}

// keyset is the ORDER BY plus optional seek predicate for one page.
type keyset[T any] struct {
	name  string
	spec  sortSpec[T]
	where string
	args  []any
	order string
}

// newKeyset resolves the sort and turns an optional cursor into
// (expr, id) < (value, id), or > for ascending sorts.
func newKeyset[T any](table sortTable[T], idExpr string, p ListParams) (keyset[T], error) {
	if p.Limit <= 0 {
		return keyset[T]{}, errors.New("limit must be positive")
	}

	name, spec, err := table.resolve(p.Sort)
	if err != nil {
		return keyset[T]{}, err
	}

	dir, op := "ASC", ">"
	if spec.desc {
		dir, op = "DESC", "<"
	}
	ks := keyset[T]{
		name:  name,
		spec:  spec,
		order: fmt.Sprintf("%s %s, %s %s", spec.expr, dir, idExpr, dir),
	}

	if p.Cursor == "" {
		return ks, nil
	}

	c, err := cursor.Decode(p.Cursor)
	if err != nil {
		return keyset[T]{}, err
	}
	if c.Sort != name {
		return keyset[T]{}, fmt.Errorf("%w: minted for sort %q, used with %q", cursor.ErrInvalid, c.Sort, name)
	}

	var value any
	switch spec.kind {
	case kindInt:
		value, err = c.Int64()
	case kindFloat:
		value, err = c.Float64()
	case kindText:
		value, err = c.Text()
	}
	if err != nil {
		return keyset[T]{}, err
	}

	ks.where = fmt.Sprintf("(%s, %s) %s (?, ?)", spec.expr, idExpr, op)
	ks.args = []any{value, c.ID}
	return ks, nil
}

// finish drops the row fetched past limit and mints the next cursor.
func (ks keyset[T]) finish(items []T, limit int, id func(T) string) (Page[T], error) {
	page := Page[T]{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasNext = true

		last := page.Items[limit-1]
		token, err := cursor.Encode(cursor.Cursor{
			Sort:  ks.name,
			Value: ks.spec.value(last),
			ID:    id(last),
		})
		if err != nil {
			return Page[T]{}, fmt.Errorf("encode cursor: %w", err)
		}
		page.NextCursor = token
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
