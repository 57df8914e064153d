package models

import (
	"time"
)

// CustomerFeature records a customer activating a product feature
type CustomerFeature struct {
	ID          string     `json:"customer_feature_id"`
	CustomerID  string     `json:"customer_id"`
	FeatureName string     `json:"feature_name"`
	ActivatedAt time.Time  `json:"activated_at"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	Category    string     `json:"feature_category"`
	IsActive    bool       `json:"is_active"`
}
