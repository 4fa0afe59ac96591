// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import "github.com/ufukk37/Business-Finder/pkg/types"

// Aggregate deduplicates businesses by place ID and truncates the
// result to at most cap entries. The first occurrence of each identity
// wins and input order is preserved, so aggregation is deterministic
// and idempotent: running it again on its own output is a no-op.
func Aggregate(businesses []types.Business, cap int) []types.Business {
	seen := make(map[string]struct{}, len(businesses))
	unique := make([]types.Business, 0, len(businesses))

	for _, b := range businesses {
		if _, dup := seen[b.PlaceID]; dup {
			continue
		}
		seen[b.PlaceID] = struct{}{}
		unique = append(unique, b)
	}

	if cap > 0 && len(unique) > cap {
		unique = unique[:cap]
	}
	return unique
}
