package dto

// SettingsGroup is the merged, typed view of one settings group.
type SettingsGroup struct {
	Group  string                 `json:"group"`
	Values map[string]interface{} `json:"values"`
}

// UpdateSettingsRequest patches a settings group. Keys outside the group's
// default key set are dropped, not rejected.
type UpdateSettingsRequest struct {
	Values map[string]interface{} `json:"values" validate:"required,min=1"`
}
