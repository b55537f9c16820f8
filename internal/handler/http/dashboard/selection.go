package dashboard

import (
	"net/url"
	"strings"

	"climate-dashboard/internal/domain/entity"
	feedUC "climate-dashboard/internal/usecase/feed"
)

// selection is the scope chosen through ?group= and repeated ?company=.
type selection struct {
	Group    string
	Names    []string
	Filtered []entity.Company // group filter only; the form offers these
	Selected []entity.Company // filtered, then narrowed by name
}

func parseSelection(q url.Values, roster Roster) selection {
	group := strings.TrimSpace(q.Get("group"))
	if group == "" {
		group = feedUC.AllGroups
	}

	var names []string
	for _, n := range q["company"] {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	filtered := feedUC.FilterByGroup(roster.List(), group)
	return selection{
		Group:    group,
		Names:    names,
		Filtered: filtered,
		Selected: feedUC.SelectByName(filtered, names),
	}
}

// query re-encodes the selection for redirects back to the page.
func (s selection) query() url.Values {
	v := url.Values{}
	if s.Group != feedUC.AllGroups {
		v.Set("group", s.Group)
	}
	for _, n := range s.Names {
		v.Add("company", n)
	}
	return v
}

func companyNames(companies []entity.Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Name
	}
	return out
}
