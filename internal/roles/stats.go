package roles

import "sort"

// popularRolesLimit caps the popularity ranking.
const popularRolesLimit = 5

// PopularRole is one entry of the popularity ranking.
type PopularRole struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserCount   int    `json:"user_count"`
}

// PermissionStats summarizes the stored permission sets.
type PermissionStats struct {
	RolesWithPermissions    int     `json:"roles_with_permissions"`
	AveragePermissionLength float64 `json:"average_permission_field_length"`
}

// Statistics is the role statistics overview.
type Statistics struct {
	TotalRoles      int             `json:"total_roles"`
	ActiveRoles     int             `json:"active_roles"`
	InactiveRoles   int             `json:"inactive_roles"`
	PopularRoles    []PopularRole   `json:"popular_roles"`
	PermissionStats PermissionStats `json:"permission_stats"`
}

// rankPopularRoles orders per-role active assignment counts by user count
// descending, drops roles nobody actively holds, and keeps the top five.
// Ties keep the input order, which the repository fixes to role ID ascending.
func rankPopularRoles(counts []PopularRole) []PopularRole {
	ranked := make([]PopularRole, 0, len(counts))
	for _, c := range counts {
		if c.UserCount > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UserCount > ranked[j].UserCount
	})
	if len(ranked) > popularRolesLimit {
		ranked = ranked[:popularRolesLimit]
	}
	return ranked
}
