// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Idea Fork API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - BriefHandler: brief listings, detail and viewer ratings
  - PostHandler: community posts and votes
  - ProductHandler: tracked products by listing or slug
  - SearchHandler: cross-entity text search
  - TagHandler: trending and product tag aggregates

Handlers are created via constructor functions that accept *store.Store and Config:

	briefHandler := handlers.NewBriefHandler(st, cfg)

# Listings

Every list endpoint takes the same paging parameters:

	sort    one of the resource's sort names (default "new")
	cursor  next_cursor from the previous page
	limit   page size, clamped to the viewer tier's maximum

and answers with

	{"data": [...], "meta": {"has_next": true, "next_cursor": "..."}}

A cursor only works with the sort it was issued for.

# Viewers

The viewer is read from the request context (see middleware.WithViewer).
Anonymous viewers may read everything but cannot rate or vote. Brief
detail shows every complaint to pro viewers and the newest three to
everyone else, flagging complaints_truncated.

# Errors

Store errors are mapped in one place. Not-found sentinels become 404 with
a resource-specific message. An existing rating or a conflicting concurrent
write becomes 409. A bad sort or cursor becomes 400. Anything else is logged
and returned as 500 "Internal server error".
*/
package handlers
