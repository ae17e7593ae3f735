// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateRatingRequest: score (1-5), optional comment
  - UpdateRatingRequest: score and/or comment
  - VoteRequest: direction (up or down)

Validation rules live in validate struct tags.

# Response Envelopes

List endpoints return

	{"data": [...], "meta": {"has_next": true, "next_cursor": "..."}}

next_cursor is null on the last page. Single objects are wrapped in
{"data": ...}. Errors use ErrorResponse.

# Domain Types

  - Post: crowd-sourced idea with vote counts
  - Brief, BriefDetail, Complaint: synthesized complaint clusters
  - Rating: one user's score for a brief
  - Product: tracked product, addressed by slug
  - SearchResult: a post, brief or product matching a query
  - Tag, TagCount

Nullable columns are returned as empty strings and tag lists as [].

# Constants

Sort names (SortNew, SortTopRated, ...), search kinds (KindPost, ...)
and vote directions (VoteUp, VoteDown).
*/
package models
