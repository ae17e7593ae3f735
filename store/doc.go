// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store runs every read and write query behind the HTTP handlers.

# Keyset Pagination

List queries never use OFFSET. Each sort is a (expression, direction)
pair with the row id as tiebreaker:

	ORDER BY b.rating_avg DESC, b.id DESC
	WHERE (b.rating_avg, b.id) < (?, ?)

A page fetches limit+1 rows. The extra row only sets HasNext; the cursor
is minted from the last returned row and records the sort it belongs to,
so it is rejected under any other sort.

# Search

Search matches a substring of search_text, which is filled in Go at write
time with NFC-normalised, Unicode case-folded fields. SQLite's LOWER only
folds ASCII, so folding in the database would miss "Ü" and "É".

# Errors

Lookups return ErrBriefNotFound, ErrPostNotFound, ErrProductNotFound or
ErrRatingNotFound, all wrapping ErrNotFound. Duplicate writes wrap
ErrConflict. Unknown sorts wrap ErrInvalidSort and bad cursors wrap
cursor.ErrInvalid.
*/
package store
