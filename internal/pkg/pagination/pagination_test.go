package pagination

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		limit        int
		defaultLimit int
		want         Params
	}{
		{name: "defaults", page: 0, limit: 0, defaultLimit: 10, want: Params{Page: 1, Limit: 10, Offset: 0}},
		{name: "second page", page: 2, limit: 20, defaultLimit: 10, want: Params{Page: 2, Limit: 20, Offset: 20}},
		{name: "limit capped", page: 1, limit: 1000, defaultLimit: 10, want: Params{Page: 1, Limit: MaxLimit, Offset: 0}},
		{name: "negative page", page: -3, limit: 5, defaultLimit: 10, want: Params{Page: 1, Limit: 5, Offset: 0}},
		{name: "bad default", page: 1, limit: 0, defaultLimit: 0, want: Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{name: "huge page capped", page: MaxPage * 4, limit: MaxLimit, defaultLimit: 10, want: Params{Page: MaxPage, Limit: MaxLimit, Offset: (MaxPage - 1) * MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.page, tt.limit, tt.defaultLimit)
			if *got != tt.want {
				t.Fatalf("New() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestNewPageNeverNil(t *testing.T) {
	p := NewPage[string](nil, New(1, 10, 10), 0)
	if p.Items == nil {
		t.Fatal("Items should be an empty slice, not nil")
	}
}
