package ports

// MaxPageSize caps every paginated query.
const MaxPageSize = 50

// Normalize clamps pagination and resolves sorting against the caller's
// allow-list, falling back to the canonical default field ascending.
func (p PageRequest) Normalize(allowedSort map[string]bool, defaultSort string) PageRequest {
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	if p.PageSize <= 0 || p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortField == "" || !allowedSort[p.SortField] {
		p.SortField = defaultSort
	}
	if p.SortOrder != SortDesc {
		p.SortOrder = SortAsc
	}
	return p
}
