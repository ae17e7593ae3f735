// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
)

var (
	seedTags       = []string{"AI", "Productivity", "Note Taking", "Finance", "Health", "Developer Tools", "Remote Work", "Privacy", "Education", "Travel"}
	seedCategories = []string{"productivity", "finance", "health", "developer-tools", "consumer"}
	seedSources    = []string{"reddit", "hackernews", "app-store", "twitter", "forum"}
	seedNouns      = []string{"calendar", "inbox", "budget", "habit tracker", "journal", "password vault", "meal planner", "code review", "standup", "itinerary"}
	seedPains      = []string{"loses my data", "is too slow", "has no offline mode", "costs too much", "has no API", "forgets settings", "is impossible to share", "has ugly exports"}
	seedBrands     = []string{"Nimbus", "Quill", "Ledger", "Pulse", "Forge", "Harbor", "Atlas", "Beacon", "Sprout", "Orbit", "Vault", "Relay"}
	seedSuffixes   = []string{"", " Pro", " Cloud", " Lite", " HQ", " Studio"}
)

// SeedCounts is how many rows of each kind to generate
type SeedCounts struct {
	Posts    int
	Briefs   int
	Products int
}

// SeedReport counts what Seed created
type SeedReport struct {
	Posts      int
	Votes      int
	Briefs     int
	Complaints int
	Ratings    int
	Products   int
}

// Seeder fills a store with deterministic sample data
type Seeder struct {
	st  *store.Store
	rng *rand.Rand
	now time.Time
}

func NewSeeder(st *store.Store, seed uint64, now time.Time) *Seeder {
	return &Seeder{
		st:  st,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Seed creates posts with votes, briefs with complaints and ratings, and products
func (s *Seeder) Seed(ctx context.Context, counts SeedCounts) (SeedReport, error) {
	var report SeedReport

	for i := 0; i < counts.Posts; i++ {
		noun := s.pick(seedNouns)
		post, err := s.st.CreatePost(ctx, store.NewPost{
			Title:        fmt.Sprintf("A %s that actually syncs (#%d)", noun, i+1),
			Body:         fmt.Sprintf("Every %s I try %s.", noun, s.pick(seedPains)),
			AuthorName:   s.optional(fmt.Sprintf("user%d", s.rng.IntN(500))),
			CommentCount: s.rng.IntN(60),
			Tags:         s.tags(),
			CreatedAt:    s.pastTime(30 * 24 * time.Hour),
		})
		if err != nil {
			return report, fmt.Errorf("seed post %d: %w", i, err)
		}
		report.Posts++

		for v, n := 0, s.rng.IntN(8); v < n; v++ {
			direction := models.VoteUp
			if s.rng.IntN(4) == 0 {
				direction = models.VoteDown
			}
			if _, err := s.st.VotePost(ctx, post.ID, fmt.Sprintf("seed-voter-%d", v), direction); err != nil {
				return report, fmt.Errorf("seed vote: %w", err)
			}
			report.Votes++
		}
	}

	for i := 0; i < counts.Briefs; i++ {
		noun := s.pick(seedNouns)
		brief, err := s.st.CreateBrief(ctx, store.NewBrief{
			Title:     fmt.Sprintf("People want a %s that never %s", noun, strings.TrimPrefix(s.pick(seedPains), "is ")),
			Summary:   fmt.Sprintf("Clustered complaints about %s tools (#%d).", noun, i+1),
			Category:  s.optional(s.pick(seedCategories)),
			Tags:      s.tags(),
			CreatedAt: s.pastTime(60 * 24 * time.Hour),
		})
		if err != nil {
			return report, fmt.Errorf("seed brief %d: %w", i, err)
		}
		report.Briefs++

		for c, n := 0, 1+s.rng.IntN(9); c < n; c++ {
			_, err := s.st.AddComplaint(ctx, brief.ID, store.NewComplaint{
				Source:    s.pick(seedSources),
				Excerpt:   fmt.Sprintf("My %s %s.", noun, s.pick(seedPains)),
				CreatedAt: s.pastTime(90 * 24 * time.Hour),
			})
			if err != nil {
				return report, fmt.Errorf("seed complaint: %w", err)
			}
			report.Complaints++
		}

		for r, n := 0, s.rng.IntN(6); r < n; r++ {
			_, err := s.st.CreateRating(ctx, brief.ID, fmt.Sprintf("seed-rater-%d", r), 1+s.rng.IntN(5), "")
			if err != nil {
				return report, fmt.Errorf("seed rating: %w", err)
			}
			report.Ratings++
		}
	}

	for i := 0; i < counts.Products; i++ {
		name := fmt.Sprintf("%s%s %d", s.pick(seedBrands), s.pick(seedSuffixes), i+1)
		_, err := s.st.CreateProduct(ctx, store.NewProduct{
			Name:         name,
			Tagline:      s.optional(fmt.Sprintf("The %s for busy teams", s.pick(seedNouns))),
			WebsiteURL:   s.optional("https://" + store.Slugify(name) + ".example.com"),
			MentionCount: s.rng.IntN(400),
			Tags:         s.tags(),
			CreatedAt:    s.pastTime(180 * 24 * time.Hour),
		})
		if err != nil {
			return report, fmt.Errorf("seed product %d: %w", i, err)
		}
		report.Products++
	}

	return report, nil
}

func (s *Seeder) pick(values []string) string {
	return values[s.rng.IntN(len(values))]
}

// optional leaves roughly one in five values empty so nullable columns get exercised
func (s *Seeder) optional(v string) string {
	if s.rng.IntN(5) == 0 {
		return ""
	}
	return v
}

func (s *Seeder) tags() []string {
	n := s.rng.IntN(4)
	out := make([]string, 0, n)
	for _, i := range s.rng.Perm(len(seedTags))[:n] {
		out = append(out, seedTags[i])
	}
	return out
}

func (s *Seeder) pastTime(within time.Duration) time.Time {
	return s.now.Add(-time.Duration(s.rng.Int64N(int64(within))))
}
