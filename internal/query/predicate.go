package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

// FilterSpec maps filter names to requested values. Absent, nil and
// empty-string values are treated as "not supplied" and contribute no
// condition. Names without a mapping in the collection's condition map are
// ignored; values never select columns.
type FilterSpec map[string]interface{}

// Predicate is a positional-argument SQL conjunction shared by the page
// query, the count query and the aggregation query, so all of them observe
// the same filter.
type Predicate struct {
	clauses []string
	Args    []interface{}
}

// Where renders the predicate as a WHERE clause. An empty FilterSpec yields
// the universal predicate.
func (p *Predicate) Where() string {
	conditions := append([]string{"1=1"}, p.clauses...)
	return "WHERE " + strings.Join(conditions, " AND ")
}

// Next returns the next positional placeholder index.
func (p *Predicate) Next() int {
	return len(p.Args) + 1
}

// BuildPredicate translates a FilterSpec into a conjunction of per-field
// conditions using the collection's fixed condition map. Filters are applied
// in lexical name order so the generated SQL is deterministic.
func BuildPredicate(c *Collection, filters FilterSpec) (*Predicate, error) {
	pred := &Predicate{}

	names := make([]string, 0, len(filters))
	for name := range filters {
		if _, ok := c.Filters[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		value := filters[name]
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		cond := c.Filters[name]
		if err := appendCondition(pred, name, cond, value); err != nil {
			return nil, err
		}
	}

	return pred, nil
}

func appendCondition(pred *Predicate, name string, cond Condition, value interface{}) error {
	switch cond.Kind {
	case ConditionExact:
		pred.clauses = append(pred.clauses, fmt.Sprintf("%s = $%d", cond.Column, pred.Next()))
		pred.Args = append(pred.Args, value)
	case ConditionSubstring:
		s, ok := value.(string)
		if !ok {
			return appErrors.Validationf(name, "%s expects a text value", name)
		}
		clause := fmt.Sprintf("LOWER(%s) LIKE $%d ESCAPE '\\'", cond.Column, pred.Next())
		pred.clauses = append(pred.clauses, clause)
		pred.Args = append(pred.Args, "%"+escapeLike(strings.ToLower(strings.TrimSpace(s)))+"%")
	case ConditionBool:
		b, err := coerceBool(name, value)
		if err != nil {
			return err
		}
		pred.clauses = append(pred.clauses, fmt.Sprintf("%s = $%d", cond.Column, pred.Next()))
		pred.Args = append(pred.Args, b)
	case ConditionRangeFrom, ConditionRangeTo:
		arg, err := coerceRange(name, cond, value)
		if err != nil {
			return err
		}
		op := ">="
		if cond.Kind == ConditionRangeTo {
			op = "<="
		}
		pred.clauses = append(pred.clauses, fmt.Sprintf("%s %s $%d", cond.Column, op, pred.Next()))
		pred.Args = append(pred.Args, arg)
	case ConditionExists:
		join := cond.Exists
		clause := fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s AND %s = $%d)",
			join.From, join.On, join.Column, pred.Next())
		pred.clauses = append(pred.clauses, clause)
		pred.Args = append(pred.Args, value)
	default:
		return appErrors.Validationf(name, "unsupported condition for %s", name)
	}
	return nil
}

// escapeLike neutralises LIKE wildcard characters in caller-supplied text so
// substring filters cannot inject match syntax.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func coerceBool(name string, value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	}
	return false, appErrors.Validationf(name, "%s expects a boolean value", name)
}

func coerceRange(name string, cond Condition, value interface{}) (interface{}, error) {
	if cond.Numeric {
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return v, nil
		case float64:
			return v, nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, appErrors.Validationf(name, "%s expects a numeric value", name)
			}
			return n, nil
		}
		return nil, appErrors.Validationf(name, "%s expects a numeric value", name)
	}

	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		raw := strings.TrimSpace(v)
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts, nil
		}
		if ts, err := time.Parse("2006-01-02", raw); err == nil {
			return ts, nil
		}
	}
	return nil, appErrors.Validationf(name, "%s expects a date value", name)
}
