package dto

type AdminOverviewResponse struct {
	HotspotCount  int64  `json:"hotspot_count"`
	ConfigCount   int64  `json:"config_count"`
	ActivityState string `json:"activity_state"`
	ActiveConfig  string `json:"active_config,omitempty"`
}
