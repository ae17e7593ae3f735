// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Idea Fork API.

# Route Registration

NewRouter builds the route table and wraps it in panic recovery and CORS:

	handler := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Briefs:

	GET   /briefs               - List briefs (sort: new, top_rated, most_complaints)
	GET   /briefs/{id}          - Brief with tags and complaints
	POST  /briefs/{id}/ratings  - Rate a brief (signed-in viewers)
	PATCH /briefs/{id}/ratings  - Change your rating

Posts:

	GET  /posts            - List posts (sort: new, top, discussed)
	GET  /posts/{id}       - Post with tags
	POST /posts/{id}/votes - Vote up or down (signed-in viewers)

Products:

	GET /products        - List products (sort: new, popular, name)
	GET /products/{slug} - Product with tags

Discovery:

	GET /search?q=         - Search posts, briefs and products
	GET /tags/trending     - Tags on recent posts
	GET /tags/by-products  - Tags ranked by product count

# Middleware

Every API route is wrapped, outermost first, in request logging and
viewer resolution (Authorization: Bearer <token>). The whole mux sits
behind middleware.Recover and middleware.CORS.
*/
package router
