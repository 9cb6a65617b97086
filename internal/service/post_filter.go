package service

import (
	"strconv"
	"strings"
	"time"

	"tagline/internal/models"
	"tagline/internal/repository"
)

// Page size bounds for post listings.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

const dateLayout = "2006-01-02"

var orderings = map[string]struct {
	field string
	desc  bool
}{
	"date_created":  {repository.OrderDateCreated, false},
	"-date_created": {repository.OrderDateCreated, true},
	"likes_count":   {repository.OrderLikesCount, false},
	"-likes_count":  {repository.OrderLikesCount, true},
	"likes":         {repository.OrderLikesCount, false},
	"-likes":        {repository.OrderLikesCount, true},
}

// ParsePostFilter turns list query parameters into a repository filter.
// Unknown keys are ignored; malformed values for known keys are validation
// errors naming the offending key.
func ParsePostFilter(query map[string]string) (repository.PostFilter, error) {
	f := repository.PostFilter{
		OrderBy: repository.OrderDateCreated,
		Desc:    true,
		Limit:   DefaultPageSize,
	}

	for _, key := range []string{"tags__name", "tags__name__exact"} {
		if raw, ok := query[key]; ok {
			f.AllTags = appendTagNames(f.AllTags, raw)
		}
	}
	f.TagContains = strings.TrimSpace(query["tags__name__icontains"])

	if v := strings.TrimSpace(query["text__icontains"]); v != "" {
		f.TextContains = v
	} else {
		f.TextContains = strings.TrimSpace(query["text"])
	}

	if err := parseDateFilters(query, &f); err != nil {
		return f, err
	}
	if err := parseLikesFilters(query, &f); err != nil {
		return f, err
	}

	if raw, ok := query["ordering"]; ok && strings.TrimSpace(raw) != "" {
		o, known := orderings[strings.TrimSpace(raw)]
		if !known {
			return f, models.NewFieldError("ordering",
				"ordering must be one of date_created, -date_created, likes_count, -likes_count")
		}
		f.OrderBy, f.Desc = o.field, o.desc
	}

	f.Limit, f.Offset = parsePage(query)
	return f, nil
}

// appendTagNames adds the comma-separated names in raw to names, skipping
// blanks and names already present.
func appendTagNames(names []string, raw string) []string {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dup := false
		for _, n := range names {
			if n == part {
				dup = true
				break
			}
		}
		if !dup {
			names = append(names, part)
		}
	}
	return names
}

// parseDate accepts a calendar date or an RFC3339 instant. dateOnly reports
// which form was given; calendar dates are midnight UTC.
func parseDate(key, raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, models.NewFieldError(key, key+" must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
}

func parseDateFilters(query map[string]string, f *repository.PostFilter) error {
	if raw, ok := query["date_created__exact"]; ok {
		t, dateOnly, err := parseDate("date_created__exact", raw)
		if err != nil {
			return err
		}
		f.CreatedGTE = later(f.CreatedGTE, t)
		if dateOnly {
			f.CreatedLT = earlier(f.CreatedLT, t.AddDate(0, 0, 1))
		} else {
			f.CreatedLTE = earlier(f.CreatedLTE, t)
		}
	}
	if raw, ok := query["date_created__gte"]; ok {
		t, _, err := parseDate("date_created__gte", raw)
		if err != nil {
			return err
		}
		f.CreatedGTE = later(f.CreatedGTE, t)
	}
	if raw, ok := query["date_created__lte"]; ok {
		t, dateOnly, err := parseDate("date_created__lte", raw)
		if err != nil {
			return err
		}
		if dateOnly {
			// the whole named day is included
			f.CreatedLT = earlier(f.CreatedLT, t.AddDate(0, 0, 1))
		} else {
			f.CreatedLTE = earlier(f.CreatedLTE, t)
		}
	}
	return nil
}

func later(cur *time.Time, t time.Time) *time.Time {
	if cur != nil && cur.After(t) {
		return cur
	}
	return &t
}

func earlier(cur *time.Time, t time.Time) *time.Time {
	if cur != nil && cur.Before(t) {
		return cur
	}
	return &t
}

func parseCount(key, raw string) (*int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return nil, models.NewFieldError(key, key+" must be a non-negative integer")
	}
	return &n, nil
}

func parseLikesFilters(query map[string]string, f *repository.PostFilter) error {
	for _, key := range []string{"likes_count", "likes_count__exact"} {
		if raw, ok := query[key]; ok {
			n, err := parseCount(key, raw)
			if err != nil {
				return err
			}
			f.LikesExact = n
		}
	}
	if raw, ok := query["likes_count__gte"]; ok {
		n, err := parseCount("likes_count__gte", raw)
		if err != nil {
			return err
		}
		f.LikesGTE = n
	}
	if raw, ok := query["likes_count__lte"]; ok {
		n, err := parseCount("likes_count__lte", raw)
		if err != nil {
			return err
		}
		f.LikesLTE = n
	}
	return nil
}

// parsePage reads limit and offset, falling back to defaults for missing or
// unusable values and capping limit at MaxPageSize.
func parsePage(query map[string]string) (limit, offset int) {
	limit = DefaultPageSize
	if v, err := strconv.Atoi(query["limit"]); err == nil && v > 0 {
		limit = min(v, MaxPageSize)
	}
	if v, err := strconv.Atoi(query["offset"]); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
