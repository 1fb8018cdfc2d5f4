package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type settingRepository interface {
	ListAll(ctx context.Context) ([]models.Setting, error)
	BulkUpsert(ctx context.Context, settings []models.Setting) error
}

type settingAuditLogger interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

type settingDefault struct {
	Type  models.SettingType
	Value interface{}
}

// settingsDefaults is the compiled-in default tree. Persisted rows only
// override keys declared here; anything else in the settings table is inert.
var settingsDefaults = map[string]map[string]settingDefault{
	"general": {
		"site_name":        {Type: models.SettingTypeString, Value: "WorkHive"},
		"maintenance_mode": {Type: models.SettingTypeBoolean, Value: false},
		"contact_email":    {Type: models.SettingTypeString, Value: "support@workhive.example"},
	},
	"jobs": {
		"max_applications_per_job": {Type: models.SettingTypeInteger, Value: 200},
		"default_expiry_days":      {Type: models.SettingTypeInteger, Value: 30},
		"featured_limit":           {Type: models.SettingTypeInteger, Value: 10},
		"auto_approve":             {Type: models.SettingTypeBoolean, Value: false},
	},
	"applications": {
		"allow_withdrawal": {Type: models.SettingTypeBoolean, Value: true},
		"notify_employer":  {Type: models.SettingTypeBoolean, Value: true},
		"resume_required":  {Type: models.SettingTypeBoolean, Value: true},
	},
	"newsletter": {
		"enabled":      {Type: models.SettingTypeBoolean, Value: true},
		"send_hour":    {Type: models.SettingTypeInteger, Value: 8},
		"footer_links": {Type: models.SettingTypeJSON, Value: []interface{}{}},
	},
	"reviews": {
		"moderation_required":     {Type: models.SettingTypeBoolean, Value: true},
		"min_rating_auto_publish": {Type: models.SettingTypeInteger, Value: 4},
	},
}

// settingsCacheKey caches the merged tree for every group under one key; any
// write invalidates the whole tree.
const settingsCacheKey = "settings:tree"

// settingsTree is the merged, typed view of all groups.
type settingsTree map[string]map[string]interface{}

// KnownSettingsGroup reports whether a group exists in the default tree.
// Handlers use it to reject unknown user-supplied group names before the
// service treats them as programming errors.
func KnownSettingsGroup(group string) bool {
	_, ok := settingsDefaults[group]
	return ok
}

// SettingsService merges the compiled-in default tree with persisted
// overrides and serves the result through a TTL cache. Reads and writes are
// best-effort: when the settings store is unreachable the resolver logs and
// serves defaults instead of failing the caller.
type SettingsService struct {
	repo      settingRepository
	cache     *CacheService
	audit     settingAuditLogger
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingRepository, cache *CacheService, audit settingAuditLogger, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &SettingsService{
		repo:      repo,
		cache:     cache,
		audit:     audit,
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// GetGroup returns the merged, typed values of a settings group. An unknown
// group is a programming error at this layer; handlers validate first.
func (s *SettingsService) GetGroup(ctx context.Context, group string) (*dto.SettingsGroup, error) {
	if !KnownSettingsGroup(group) {
		panic(fmt.Sprintf("settings: unknown group %q", group))
	}

	tree := s.resolveTree(ctx)
	return &dto.SettingsGroup{Group: group, Values: tree[group]}, nil
}

// Update patches a settings group. Keys outside the group's default key set
// are dropped. Persistence failure is logged, not surfaced: the caller
// receives the attempted new group state regardless, and the cache is always
// invalidated so the next read re-merges from source.
func (s *SettingsService) Update(ctx context.Context, group string, req dto.UpdateSettingsRequest, actor *models.JWTClaims) (*dto.SettingsGroup, error) {
	defaults, ok := settingsDefaults[group]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown settings group %q", group))
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	keys := make([]string, 0, len(req.Values))
	for key := range req.Values {
		if _, ok := defaults[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	toUpsert := make([]models.Setting, 0, len(keys))
	accepted := make(map[string]interface{}, len(keys))
	for _, key := range keys {
		def := defaults[key]
		encoded, typed, err := encodeSettingValue(key, def, req.Values[key])
		if err != nil {
			return nil, err
		}
		toUpsert = append(toUpsert, models.Setting{
			Group:     group,
			Key:       key,
			Value:     encoded,
			Type:      def.Type,
			UpdatedBy: actorID(actor),
		})
		accepted[key] = typed
	}

	if len(toUpsert) > 0 {
		if err := s.repo.BulkUpsert(ctx, toUpsert); err != nil {
			s.logger.Warn("settings persistence unavailable, override not stored",
				zap.String("group", group), zap.Error(err))
		} else {
			s.emitAudit(ctx, actor, group, accepted)
		}
	}

	if s.cache != nil {
		s.cache.Forget(ctx, settingsCacheKey)
	}

	merged := s.buildTree(ctx)
	values := merged[group]
	for key, value := range accepted {
		values[key] = value
	}
	return &dto.SettingsGroup{Group: group, Values: values}, nil
}

// resolveTree returns the cached merged tree, rebuilding and re-caching it on
// a miss. The tree is computed fully before being published; concurrent
// readers observe either the previous or the new tree, never a partial merge.
func (s *SettingsService) resolveTree(ctx context.Context) settingsTree {
	if s.cache != nil {
		var cached settingsTree
		if s.cache.Get(ctx, settingsCacheKey, &cached) {
			return normalizeTree(cached)
		}
	}

	tree := s.buildTree(ctx)
	if s.cache != nil {
		s.cache.Set(ctx, settingsCacheKey, tree, s.cacheTTL)
	}
	return tree
}

// buildTree merges the default tree with persisted overrides. A persistence
// failure serves defaults only.
func (s *SettingsService) buildTree(ctx context.Context) settingsTree {
	tree := defaultTree()

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("settings store unavailable, serving defaults", zap.Error(err))
		return tree
	}

	for _, row := range rows {
		defaults, ok := settingsDefaults[row.Group]
		if !ok {
			continue
		}
		def, ok := defaults[row.Key]
		if !ok {
			continue
		}
		value, err := coerceStoredValue(def, row.Value)
		if err != nil {
			s.logger.Warn("unparseable settings override, keeping default",
				zap.String("group", row.Group), zap.String("key", row.Key), zap.Error(err))
			continue
		}
		tree[row.Group][row.Key] = value
	}
	return tree
}

func defaultTree() settingsTree {
	tree := make(settingsTree, len(settingsDefaults))
	for group, defaults := range settingsDefaults {
		values := make(map[string]interface{}, len(defaults))
		for key, def := range defaults {
			values[key] = def.Value
		}
		tree[group] = values
	}
	return tree
}

// normalizeTree restores declared types after a JSON round-trip through the
// cache, where integers come back as float64.
func normalizeTree(cached settingsTree) settingsTree {
	tree := defaultTree()
	for group, values := range cached {
		defaults, ok := settingsDefaults[group]
		if !ok {
			continue
		}
		for key, value := range values {
			def, ok := defaults[key]
			if !ok {
				continue
			}
			if def.Type == models.SettingTypeInteger {
				if f, ok := value.(float64); ok {
					value = int(f)
				}
			}
			tree[group][key] = value
		}
	}
	return tree
}

// coerceStoredValue converts a persisted string value to the declared type of
// the matching default.
func coerceStoredValue(def settingDefault, raw string) (interface{}, error) {
	switch def.Type {
	case models.SettingTypeBoolean:
		return parseTruthy(raw), nil
	case models.SettingTypeInteger:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse integer %q: %w", raw, err)
		}
		return n, nil
	case models.SettingTypeJSON:
		var decoded interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return decoded, nil
	default:
		return raw, nil
	}
}

// encodeSettingValue validates a patch value against the declared type and
// returns both its storage encoding and its typed form.
func encodeSettingValue(key string, def settingDefault, value interface{}) (string, interface{}, error) {
	switch def.Type {
	case models.SettingTypeBoolean:
		switch v := value.(type) {
		case bool:
			return strconv.FormatBool(v), v, nil
		case string:
			b := parseTruthy(v)
			return strconv.FormatBool(b), b, nil
		}
		return "", nil, appErrors.Validationf(key, "%s expects a boolean value", key)
	case models.SettingTypeInteger:
		switch v := value.(type) {
		case int:
			return strconv.Itoa(v), v, nil
		case float64:
			n := int(v)
			return strconv.Itoa(n), n, nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return "", nil, appErrors.Validationf(key, "%s expects an integer value", key)
			}
			return strconv.Itoa(n), n, nil
		}
		return "", nil, appErrors.Validationf(key, "%s expects an integer value", key)
	case models.SettingTypeJSON:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", nil, appErrors.Validationf(key, "%s expects a json value", key)
		}
		return string(encoded), value, nil
	default:
		switch v := value.(type) {
		case string:
			return v, v, nil
		}
		return "", nil, appErrors.Validationf(key, "%s expects a text value", key)
	}
}

func parseTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

func (s *SettingsService) emitAudit(ctx context.Context, actor *models.JWTClaims, group string, values map[string]interface{}) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(values)
	entry := &models.AuditLog{
		UserID:     actorID(actor),
		Action:     models.AuditActionSettingsUpdate,
		Resource:   "settings",
		ResourceID: &group,
		NewValues:  payload,
		IPAddress:  "system",
		UserAgent:  "settings-service",
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record settings audit", zap.Error(err))
	}
}

func actorID(actor *models.JWTClaims) *string {
	if actor == nil || actor.UserID == "" {
		return nil
	}
	id := actor.UserID
	return &id
}
