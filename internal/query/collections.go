package query

import "fmt"

// ConditionKind enumerates the condition shapes a filter can map to.
type ConditionKind int

const (
	// ConditionExact compares the column for equality.
	ConditionExact ConditionKind = iota
	// ConditionSubstring performs a case-insensitive substring match.
	ConditionSubstring
	// ConditionBool compares a boolean column.
	ConditionBool
	// ConditionRangeFrom applies an inclusive lower bound.
	ConditionRangeFrom
	// ConditionRangeTo applies an inclusive upper bound.
	ConditionRangeTo
	// ConditionExists filters through a joined collection via EXISTS.
	ConditionExists
)

// Condition binds a filter name to a column and a condition shape. Filter
// values never select columns; the mapping is fixed per collection.
type Condition struct {
	Kind    ConditionKind
	Column  string
	Numeric bool        // range operand is numeric rather than a timestamp
	Exists  *ExistsJoin // populated for ConditionExists
}

// ExistsJoin describes an exists-in-joined-collection condition.
type ExistsJoin struct {
	From   string // joined table with alias, e.g. "jobs j"
	On     string // join back to the base row, e.g. "j.id = a.job_id"
	Column string // filtered column in the joined table
}

// Relation declares an eager-loadable related collection. Related rows are
// fetched with a single batched IN query keyed by the current page's foreign
// keys, never one query per row.
type Relation struct {
	From   string
	Key    string
	Select string
}

// Collection describes a queryable entity collection: its FROM clause, the
// fixed filter condition map, the sortable-column allow-list, aggregation
// dimensions and eager-loadable relations.
type Collection struct {
	Name       string
	From       string
	Select     string
	CreatedAt  string // qualified created_at column, used for windows and default sort
	Filters    map[string]Condition
	Sortable   map[string]string
	Dimensions map[string]string
	Relations  map[string]Relation
}

var collections = map[string]*Collection{
	"jobs": {
		Name:      "jobs",
		From:      "jobs j",
		Select:    "j.id, j.company_id, j.title, j.slug, j.status, j.category, j.location, j.featured, j.salary_min, j.salary_max, j.expires_at, j.created_at, j.updated_at",
		CreatedAt: "j.created_at",
		Filters: map[string]Condition{
			"status":       {Kind: ConditionExact, Column: "j.status"},
			"company_id":   {Kind: ConditionExact, Column: "j.company_id"},
			"category":     {Kind: ConditionExact, Column: "j.category"},
			"location":     {Kind: ConditionSubstring, Column: "j.location"},
			"search":       {Kind: ConditionSubstring, Column: "j.title"},
			"featured":     {Kind: ConditionBool, Column: "j.featured"},
			"salary_from":  {Kind: ConditionRangeFrom, Column: "j.salary_min", Numeric: true},
			"salary_to":    {Kind: ConditionRangeTo, Column: "j.salary_max", Numeric: true},
			"created_from": {Kind: ConditionRangeFrom, Column: "j.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "j.created_at"},
		},
		Sortable: map[string]string{
			"title":      "j.title",
			"status":     "j.status",
			"category":   "j.category",
			"expires_at": "j.expires_at",
			"created_at": "j.created_at",
		},
		Dimensions: map[string]string{
			"status":   "j.status",
			"category": "j.category",
		},
		Relations: map[string]Relation{
			"company": {From: "companies", Key: "id", Select: "id, name, industry, website, verified, created_at, updated_at"},
		},
	},
	"companies": {
		Name:      "companies",
		From:      "companies c",
		Select:    "c.id, c.name, c.industry, c.website, c.verified, c.created_at, c.updated_at",
		CreatedAt: "c.created_at",
		Filters: map[string]Condition{
			"industry":     {Kind: ConditionExact, Column: "c.industry"},
			"verified":     {Kind: ConditionBool, Column: "c.verified"},
			"search":       {Kind: ConditionSubstring, Column: "c.name"},
			"created_from": {Kind: ConditionRangeFrom, Column: "c.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "c.created_at"},
		},
		Sortable: map[string]string{
			"name":       "c.name",
			"industry":   "c.industry",
			"created_at": "c.created_at",
		},
		Dimensions: map[string]string{
			"industry": "c.industry",
		},
	},
	"users": {
		Name:      "users",
		From:      "users u",
		Select:    "u.id, u.email, u.full_name, u.role, u.active, u.last_login, u.created_at, u.updated_at",
		CreatedAt: "u.created_at",
		Filters: map[string]Condition{
			"role":         {Kind: ConditionExact, Column: "u.role"},
			"active":       {Kind: ConditionBool, Column: "u.active"},
			"email":        {Kind: ConditionSubstring, Column: "u.email"},
			"search":       {Kind: ConditionSubstring, Column: "u.full_name"},
			"created_from": {Kind: ConditionRangeFrom, Column: "u.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "u.created_at"},
		},
		Sortable: map[string]string{
			"email":      "u.email",
			"full_name":  "u.full_name",
			"role":       "u.role",
			"last_login": "u.last_login",
			"created_at": "u.created_at",
		},
		Dimensions: map[string]string{
			"role": "u.role",
		},
	},
	"applications": {
		Name:      "applications",
		From:      "applications a",
		Select:    "a.id, a.job_id, a.user_id, a.status, a.resume_url, a.decided_at, a.created_at, a.updated_at",
		CreatedAt: "a.created_at",
		Filters: map[string]Condition{
			"status":  {Kind: ConditionExact, Column: "a.status"},
			"job_id":  {Kind: ConditionExact, Column: "a.job_id"},
			"user_id": {Kind: ConditionExact, Column: "a.user_id"},
			"company_id": {Kind: ConditionExists, Exists: &ExistsJoin{
				From:   "jobs j",
				On:     "j.id = a.job_id",
				Column: "j.company_id",
			}},
			"created_from": {Kind: ConditionRangeFrom, Column: "a.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "a.created_at"},
		},
		Sortable: map[string]string{
			"status":     "a.status",
			"decided_at": "a.decided_at",
			"created_at": "a.created_at",
		},
		Dimensions: map[string]string{
			"status": "a.status",
		},
		Relations: map[string]Relation{
			"job":  {From: "jobs", Key: "id", Select: "id, company_id, title, slug, status, category, location, featured, salary_min, salary_max, expires_at, created_at, updated_at"},
			"user": {From: "users", Key: "id", Select: "id, email, full_name, role, active, last_login, created_at, updated_at"},
		},
	},
	"blog_posts": {
		Name:      "blog_posts",
		From:      "blog_posts b",
		Select:    "b.id, b.author_id, b.title, b.slug, b.published, b.posted_at, b.created_at, b.updated_at",
		CreatedAt: "b.created_at",
		Filters: map[string]Condition{
			"published":    {Kind: ConditionBool, Column: "b.published"},
			"author_id":    {Kind: ConditionExact, Column: "b.author_id"},
			"search":       {Kind: ConditionSubstring, Column: "b.title"},
			"created_from": {Kind: ConditionRangeFrom, Column: "b.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "b.created_at"},
		},
		Sortable: map[string]string{
			"title":      "b.title",
			"posted_at":  "b.posted_at",
			"created_at": "b.created_at",
		},
		Relations: map[string]Relation{
			"author": {From: "users", Key: "id", Select: "id, email, full_name, role, active, last_login, created_at, updated_at"},
		},
	},
	"reviews": {
		Name:      "reviews",
		From:      "reviews r",
		Select:    "r.id, r.company_id, r.user_id, r.rating, r.body, r.approved, r.created_at, r.updated_at",
		CreatedAt: "r.created_at",
		Filters: map[string]Condition{
			"company_id":   {Kind: ConditionExact, Column: "r.company_id"},
			"approved":     {Kind: ConditionBool, Column: "r.approved"},
			"rating_from":  {Kind: ConditionRangeFrom, Column: "r.rating", Numeric: true},
			"rating_to":    {Kind: ConditionRangeTo, Column: "r.rating", Numeric: true},
			"created_from": {Kind: ConditionRangeFrom, Column: "r.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "r.created_at"},
		},
		Sortable: map[string]string{
			"rating":     "r.rating",
			"created_at": "r.created_at",
		},
		Dimensions: map[string]string{
			"rating": "r.rating",
		},
		Relations: map[string]Relation{
			"company": {From: "companies", Key: "id", Select: "id, name, industry, website, verified, created_at, updated_at"},
		},
	},
	"subscribers": {
		Name:      "subscribers",
		From:      "subscribers s",
		Select:    "s.id, s.email, s.verified, s.created_at",
		CreatedAt: "s.created_at",
		Filters: map[string]Condition{
			"verified":     {Kind: ConditionBool, Column: "s.verified"},
			"search":       {Kind: ConditionSubstring, Column: "s.email"},
			"created_from": {Kind: ConditionRangeFrom, Column: "s.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "s.created_at"},
		},
		Sortable: map[string]string{
			"email":      "s.email",
			"created_at": "s.created_at",
		},
	},
	"audit_logs": {
		Name:      "audit_logs",
		From:      "audit_logs al",
		Select:    "al.id, al.user_id, al.action, al.resource, al.resource_id, al.old_values, al.new_values, al.ip_address, al.user_agent, al.created_at",
		CreatedAt: "al.created_at",
		Filters: map[string]Condition{
			"action":       {Kind: ConditionExact, Column: "al.action"},
			"resource":     {Kind: ConditionExact, Column: "al.resource"},
			"user_id":      {Kind: ConditionExact, Column: "al.user_id"},
			"created_from": {Kind: ConditionRangeFrom, Column: "al.created_at"},
			"created_to":   {Kind: ConditionRangeTo, Column: "al.created_at"},
		},
		Sortable: map[string]string{
			"action":     "al.action",
			"resource":   "al.resource",
			"created_at": "al.created_at",
		},
		Dimensions: map[string]string{
			"action": "al.action",
		},
	},
}

// Lookup resolves a collection descriptor by name. An unknown name is a
// programming error, not caller input, so it panics.
func Lookup(name string) *Collection {
	c, ok := collections[name]
	if !ok {
		panic(fmt.Sprintf("query: unknown collection %q", name))
	}
	return c
}
