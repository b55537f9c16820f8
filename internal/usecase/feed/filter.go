package feed

import "climate-dashboard/internal/domain/entity"

// AllGroups is the group sentinel meaning "no filter".
const AllGroups = "All"

// FilterByGroup returns the companies in group, keeping the input order.
// AllGroups or an empty group returns every company. A group with no members
// yields an empty, non-nil slice.
func FilterByGroup(companies []entity.Company, group string) []entity.Company {
	out := make([]entity.Company, 0, len(companies))
	for _, c := range companies {
		if group == "" || group == AllGroups || c.Group == group {
			out = append(out, c)
		}
	}
	return out
}

// SelectByName narrows companies to the given names.
// The result keeps the order of companies, not of names, and unknown names are
// ignored. An empty names list selects everything, like a multi-select whose
// default is the whole filtered list.
func SelectByName(companies []entity.Company, names []string) []entity.Company {
	if len(names) == 0 {
		out := make([]entity.Company, len(companies))
		copy(out, companies)
		return out
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	out := make([]entity.Company, 0, len(names))
	for _, c := range companies {
		if _, ok := wanted[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out
}
