package profile

import "time"

// Profile is a named, category-scoped rule set. Category is the join key to
// products: the orchestrator resolves each pending product's profile by
// category, and a product with no profile for its category always fails.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Regulations []string  `json:"regulations"`
	Rules       Rules     `json:"rules"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Rules are the fixed rule shapes a profile can carry. Absent fields mean
// the rule does not apply.
type Rules struct {
	MinSustainabilityScore *int     `json:"minSustainabilityScore,omitempty"`
	RequiredKeywords       []string `json:"requiredKeywords,omitempty"`
	BannedKeywords         []string `json:"bannedKeywords,omitempty"`
}
