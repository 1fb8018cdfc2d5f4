package query

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/models"
)

// Config bounds the store's pagination behaviour.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Observer receives the latency of each executed store operation. The
// operation label is one of query, count, related or aggregate.
type Observer func(collection, operation string, duration time.Duration)

// Store executes declarative queries against registered entity collections.
// Each request issues exactly two reads (page query, count query) built from
// the same predicate, plus one batched read per eager-loaded relation. The
// two reads are not wrapped in a transaction; a write landing between them is
// an accepted eventual-consistency window.
type Store struct {
	db      *sqlx.DB
	logger  *zap.Logger
	cfg     Config
	now     func() time.Time
	observe Observer
}

// NewStore constructs a Store.
func NewStore(db *sqlx.DB, logger *zap.Logger, cfg Config) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = MaxPageSize
	}
	return &Store{db: db, logger: logger, cfg: cfg, now: time.Now}
}

// WithClock overrides the store's time source. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithObserver registers a latency observer for executed operations.
func (s *Store) WithObserver(observe Observer) *Store {
	s.observe = observe
	return s
}

// observed reports an operation's latency. The wall clock is used directly
// so that injected test clocks do not distort durations.
func (s *Store) observed(collection, operation string, start time.Time) {
	if s.observe != nil {
		s.observe(collection, operation, time.Since(start))
	}
}

// Query runs a resolved filter/sort/page request against a collection,
// scanning the page into dest (a pointer to a slice of row structs) and
// returning pagination metadata whose total count reflects the same
// predicate as the returned page.
func (s *Store) Query(ctx context.Context, name string, filters FilterSpec, sortSpec SortSpec, pageSpec PageSpec, dest interface{}) (*models.Pagination, error) {
	c := Lookup(name)

	pred, err := BuildPredicate(c, filters)
	if err != nil {
		return nil, err
	}
	defer s.observed(c.Name, "query", time.Now())

	pageQuery := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s %s LIMIT %d OFFSET %d",
		c.Select, c.From, pred.Where(), sortSpec.Column, sortSpec.Direction, pageSpec.Size, pageSpec.Offset())
	if err := s.db.SelectContext(ctx, dest, pageQuery, pred.Args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", c.Name, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", c.From, pred.Where())
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, pred.Args...); err != nil {
		return nil, fmt.Errorf("count %s: %w", c.Name, err)
	}

	return &models.Pagination{Page: pageSpec.Page, PageSize: pageSpec.Size, TotalCount: total}, nil
}

// List resolves raw sort/page inputs and runs Query. This is the entry point
// used by the admin listing services.
func (s *Store) List(ctx context.Context, name string, filters FilterSpec, sortBy, sortDir string, page, size int, dest interface{}) (*models.Pagination, error) {
	c := Lookup(name)

	sortSpec, err := ResolveSort(c, sortBy, sortDir)
	if err != nil {
		return nil, err
	}
	pageSpec := ResolvePage(page, size, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	return s.Query(ctx, name, filters, sortSpec, pageSpec, dest)
}

// Count returns the number of rows matching the filter.
func (s *Store) Count(ctx context.Context, name string, filters FilterSpec) (int, error) {
	c := Lookup(name)

	pred, err := BuildPredicate(c, filters)
	if err != nil {
		return 0, err
	}
	defer s.observed(c.Name, "count", time.Now())

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", c.From, pred.Where())
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, pred.Args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.Name, err)
	}
	return total, nil
}

// Related eager-loads a declared relation for a page of rows with a single
// batched IN query keyed by the page's foreign-key set. dest is a pointer to
// a slice of the related row struct. Empty key sets load nothing.
func (s *Store) Related(ctx context.Context, name, relation string, keys []string, dest interface{}) error {
	c := Lookup(name)
	rel, ok := c.Relations[relation]
	if !ok {
		panic(fmt.Sprintf("query: collection %q has no relation %q", name, relation))
	}

	unique := dedupe(keys)
	if len(unique) == 0 {
		return nil
	}
	defer s.observed(c.Name, "related", time.Now())

	raw := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (?)", rel.Select, rel.From, rel.Key)
	expanded, args, err := sqlx.In(raw, unique)
	if err != nil {
		return fmt.Errorf("expand %s.%s keys: %w", name, relation, err)
	}
	expanded = s.db.Rebind(expanded)

	if err := s.db.SelectContext(ctx, dest, expanded, args...); err != nil {
		return fmt.Errorf("load %s.%s: %w", name, relation, err)
	}
	return nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
