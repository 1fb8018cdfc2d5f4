package models

import "time"

// SettingType defines supported types for persisted setting values.
type SettingType string

const (
	SettingTypeString  SettingType = "STRING"
	SettingTypeBoolean SettingType = "BOOLEAN"
	SettingTypeInteger SettingType = "INTEGER"
	SettingTypeJSON    SettingType = "JSON"
)

// Setting represents a persisted override of a compiled-in default.
// Overrides are upserted by (group, key) and never physically deleted; absence
// of a row means the default applies.
type Setting struct {
	Group     string      `db:"group_name" json:"group"`
	Key       string      `db:"key" json:"key"`
	Value     string      `db:"value" json:"value"`
	Type      SettingType `db:"type" json:"type"`
	UpdatedBy *string     `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}
