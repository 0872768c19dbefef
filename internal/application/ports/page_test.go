package ports

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	allowed := map[string]bool{"email": true, "createdAt": true}

	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{
			"zero value gets defaults",
			PageRequest{},
			PageRequest{PageIndex: 0, PageSize: MaxPageSize, SortField: "email", SortOrder: SortAsc},
		},
		{
			"negative index clamped",
			PageRequest{PageIndex: -5, PageSize: 10, SortField: "email"},
			PageRequest{PageIndex: 0, PageSize: 10, SortField: "email", SortOrder: SortAsc},
		},
		{
			"oversized page capped",
			PageRequest{PageSize: 1000, SortField: "createdAt", SortOrder: SortDesc},
			PageRequest{PageIndex: 0, PageSize: MaxPageSize, SortField: "createdAt", SortOrder: SortDesc},
		},
		{
			"disallowed sort falls back",
			PageRequest{PageSize: 20, SortField: "passwordHash"},
			PageRequest{PageIndex: 0, PageSize: 20, SortField: "email", SortOrder: SortAsc},
		},
		{
			"unknown order coerced to ASC",
			PageRequest{PageSize: 20, SortField: "email", SortOrder: "sideways"},
			PageRequest{PageIndex: 0, PageSize: 20, SortField: "email", SortOrder: SortAsc},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(allowed, "email"); got != tt.want {
				t.Fatalf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
