package models

import "time"

// ResourceOverride holds display metadata for one resource (e.g., leaderboard)
// loaded from the catalog file. Empty fields keep the builtin value.
type ResourceOverride struct {
	Resource    string `json:"resource"`
	DisplayName string `json:"displayName,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	EmptyNotice string `json:"emptyNotice,omitempty"`
	TotalLabel  string `json:"totalLabel,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"` // "/api/leaderboard/"
}

// ResourceInfo describes a resource as exposed by /api/v1/resources
type ResourceInfo struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"displayName"`
	Tagline     string `json:"tagline"`
	Endpoint    string `json:"endpoint"`
	Layout      string `json:"layout"` // table | cards
}

// Warning records a payload that did not match any accepted collection shape
type Warning struct {
	ID         string    `json:"id"`
	LoadID     string    `json:"load_id,omitempty"`
	Resource   string    `json:"resource"`
	Endpoint   string    `json:"endpoint"`
	Shape      string    `json:"shape"`
	Detail     string    `json:"detail,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
}
