// govdir/models/derive.go
package models

import (
	"sort"
	"strings"
)

// FilterSites returns the sites matching a search term and category filter.
// A site matches when its title or description contains the term
// case-insensitively, and its category equals the filter unless the filter is
// empty or "all". The input slice is never mutated.
func FilterSites(sites []Site, term, category string) []Site {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Site, 0, len(sites))
	for _, s := range sites {
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.Title), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			continue
		}
		if category != "" && category != "all" && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DistinctCategories returns the sorted set of categories present in the given
// sites. It is recomputed from the loaded set each time so the list can never
// drift from the rows actually in the directory.
func DistinctCategories(sites []Site) []string {
	seen := make(map[string]bool, len(sites))
	var categories []string
	for _, s := range sites {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		categories = append(categories, s.Category)
	}
	sort.Strings(categories)
	return categories
}

// ComputeReviewStats counts the given comments by rating. Unknown ratings are
// counted as neutral so the parts always sum to the total.
func ComputeReviewStats(comments []Comment) ReviewStats {
	var stats ReviewStats
	for _, c := range comments {
		switch c.Rating {
		case RatingPositive:
			stats.Positive++
		case RatingNegative:
			stats.Negative++
		default:
			stats.Neutral++
		}
		stats.Total++
	}
	return stats
}

// CommentsForSite returns the subset of comments referencing the given site.
// Comments whose site has been deleted simply drop out of every id-join.
func CommentsForSite(comments []Comment, siteID string) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.SiteID == siteID {
			out = append(out, c)
		}
	}
	return out
}
