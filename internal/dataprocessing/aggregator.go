package dataprocessing

import (
	"sort"
	"strings"

	"acxroyalty/pkg/contracts/domain"
)

// moneyPlaces is the precision gross and net royalties are rounded to.
// decimal.Round rounds half away from zero, so 15.005 becomes 15.01.
const moneyPlaces = 2

// Aggregate merges records sharing a title into one row per title.
//
// Text columns keep the first non-null value in input order and numeric
// columns are summed. Gross and net royalties are then rounded to cents.
// Rows come out ordered by net royalties descending; equal nets keep the
// ascending title order of the grouping step.
//
// Titles are matched exactly, including case and surrounding whitespace.
func Aggregate(records []domain.RoyaltyRecord) []domain.RoyaltyRecord {
	groups := make(map[string]*domain.RoyaltyRecord)
	titles := make([]string, 0)

	for i := range records {
		src := &records[i]
		// same rule as clean: blank and whitespace-only titles are dropped
		if strings.TrimSpace(src.Title) == "" {
			continue
		}

		dst, ok := groups[src.Title]
		if !ok {
			rec := domain.NewRoyaltyRecord(src.Title)
			dst = &rec
			groups[src.Title] = dst
			titles = append(titles, src.Title)
		}
		merge(dst, src)
	}

	sort.Strings(titles)

	out := make([]domain.RoyaltyRecord, 0, len(titles))
	for _, title := range titles {
		rec := groups[title]
		rec.GrossRoyalties = rec.GrossRoyalties.Round(moneyPlaces)
		rec.NetRoyalties = rec.NetRoyalties.Round(moneyPlaces)
		out = append(out, *rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetRoyalties.GreaterThan(out[j].NetRoyalties)
	})
	return out
}

func merge(dst, src *domain.RoyaltyRecord) {
	for _, col := range domain.Schema {
		switch col.Merge {
		case domain.MergeFirst:
			to, from := col.Text(dst), col.Text(src)
			if *to == nil && *from != nil {
				v := **from
				*to = &v
			}
		case domain.MergeSum:
			to := col.Number(dst)
			*to = to.Add(*col.Number(src))
		}
	}
}
