package query

import (
	"context"
	"fmt"
	"time"

	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

// TimeBucket is an aggregate count of rows sharing a calendar date and,
// when a dimension is requested, a categorical label.
type TimeBucket struct {
	Date      time.Time `db:"bucket_date" json:"date"`
	Dimension string    `db:"dimension" json:"dimension,omitempty"`
	Count     int       `db:"total" json:"count"`
}

// Aggregate groups rows created within the rolling window by calendar date
// and optionally by a dimension column from the collection's dimension
// allow-list. The result is ordered ascending by date with a stable secondary
// ordering by dimension label.
//
// Buckets with zero matching rows are not synthesized: the sequence is
// sparse. Several reports (daily registrations among them) consume the sparse
// form directly; callers wanting dense series must post-process.
func (s *Store) Aggregate(ctx context.Context, name string, filters FilterSpec, windowDays int, dimension string) ([]TimeBucket, error) {
	c := Lookup(name)

	if windowDays <= 0 {
		return nil, appErrors.Validationf("window_days", "window_days must be positive")
	}

	dimensionColumn := ""
	if dimension != "" {
		col, ok := c.Dimensions[dimension]
		if !ok {
			return nil, appErrors.Validationf("dimension", "unsupported dimension %q", dimension)
		}
		dimensionColumn = col
	}

	pred, err := BuildPredicate(c, filters)
	if err != nil {
		return nil, err
	}
	defer s.observed(c.Name, "aggregate", time.Now())

	since := s.now().UTC().AddDate(0, 0, -windowDays)
	window := fmt.Sprintf("%s AND %s >= $%d", pred.Where(), c.CreatedAt, pred.Next())
	args := append(pred.Args, since)

	var aggQuery string
	if dimensionColumn == "" {
		aggQuery = fmt.Sprintf(
			"SELECT DATE(%s) AS bucket_date, COUNT(*) AS total FROM %s %s GROUP BY DATE(%s) ORDER BY bucket_date ASC",
			c.CreatedAt, c.From, window, c.CreatedAt)
	} else {
		aggQuery = fmt.Sprintf(
			"SELECT DATE(%s) AS bucket_date, %s::text AS dimension, COUNT(*) AS total FROM %s %s GROUP BY DATE(%s), %s ORDER BY bucket_date ASC, dimension ASC",
			c.CreatedAt, dimensionColumn, c.From, window, c.CreatedAt, dimensionColumn)
	}

	var buckets []TimeBucket
	if err := s.db.SelectContext(ctx, &buckets, aggQuery, args...); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", c.Name, err)
	}
	return buckets, nil
}
