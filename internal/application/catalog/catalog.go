package catalog

import (
	"fmt"

	"octofit/internal/domain/activity"
	"octofit/internal/domain/collection"
	"octofit/internal/domain/leaderboard"
	"octofit/internal/domain/team"
	"octofit/internal/domain/user"
	"octofit/internal/domain/workout"
)

// All returns the dashboard views in navigation order.
func All() []collection.Schema {
	return []collection.Schema{
		user.Schema(),
		team.Schema(),
		activity.Schema(),
		workout.Schema(),
		leaderboard.Schema(),
	}
}

// Lookup finds a view by entity name, e.g. "users".
func Lookup(entity string) (collection.Schema, bool) {
	for _, s := range All() {
		if s.Entity == entity {
			return s, true
		}
	}
	return collection.Schema{}, false
}

// Validate checks every schema and that entity names are unique.
// PRE: none
// POST: Returns the first problem found, nil otherwise
func Validate() error {
	seen := make(map[string]bool)
	for _, s := range All() {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Entity] {
			return fmt.Errorf("duplicate entity %q", s.Entity)
		}
		seen[s.Entity] = true
	}
	return nil
}

// Entities returns the entity names in navigation order.
func Entities() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Entity
	}
	return names
}
