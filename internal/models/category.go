package models

import "fmt"

// CategorySets holds the per-category pool sizes reported by /api/init.
type CategorySets struct {
	Set1Count int `json:"set1_count"`
	Set2Count int `json:"set2_count"`
	Total     int `json:"total,omitempty"`
}

// CategoryInfo maps category name to its set counts.
type CategoryInfo map[string]CategorySets

// PoolKey is the identifier for a (category, set) pool, matching the
// server's active_pool format.
func PoolKey(category string, set int) string {
	return fmt.Sprintf("%s_%d", category, set)
}
