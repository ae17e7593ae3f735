// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies viewers and generates IDs.

# Viewer Tokens

A viewer token carries a user id and tier, signed with HMAC-SHA256:

	token, err := auth.IssueViewerToken(userID, auth.TierPro, secret)
	viewer, err := auth.ParseViewerToken(token, secret)

The format is base64url(payload) "." base64url(mac). Requests without a
token are served as Anonymous.

# Tiers

	anonymous  20 items per page, 3 complaints per brief
	free       50 items per page, 3 complaints per brief
	pro        100 items per page, every complaint

# IDs

NewID returns a random UUID string; ValidID checks one.
*/
package auth
