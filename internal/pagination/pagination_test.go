package pagination

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParseParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 6},
		{"explicit page", "page=3", 3, 6},
		{"explicit limit", "limit=10", 1, 10},
		{"both", "page=2&limit=20", 2, 20},
		{"invalid page", "page=abc", 1, 6},
		{"zero page", "page=0", 1, 6},
		{"negative limit", "limit=-5", 1, 6},
		{"limit above cap", "limit=1000", 1, 6},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery failed: %v", err)
			}

			params := ParseParams(values, 6)
			if params.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", params.Page, tt.wantPage)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", params.Limit, tt.wantLimit)
			}
		})
	}
}

func TestParams_Offset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page  int
		limit int
		want  int
	}{
		{1, 6, 0},
		{2, 6, 6},
		{3, 10, 20},
	}

	for _, tt := range tests {
		tt := tt
		p := Params{Page: tt.page, Limit: tt.limit}
		if got := p.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestParams_InvalidPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		count int64
		want  bool
	}{
		{"first page of empty set", 1, 6, 0, false},
		{"first page", 1, 6, 13, false},
		{"middle page", 2, 6, 13, false},
		{"exact last page", 3, 6, 13, false},
		{"one past the end", 4, 6, 13, true},
		{"far past the end", 5, 6, 3, true},
		{"second page of empty set", 2, 6, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := Params{Page: tt.page, Limit: tt.limit}
			if got := p.InvalidPage(tt.count); got != tt.want {
				t.Errorf("InvalidPage(count=%d, page=%d, limit=%d) = %v, want %v",
					tt.count, tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestNewResponse_FirstPage(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/api/recipes?limit=6", nil)
	params := Params{Page: 1, Limit: 6}

	resp := NewResponse(r, "http://localhost:8000", 13, params, []int{})

	if resp.Count != 13 {
		t.Errorf("Count = %d, want 13", resp.Count)
	}
	if resp.Previous != nil {
		t.Errorf("Previous should be nil on first page, got %s", *resp.Previous)
	}
	if resp.Next == nil {
		t.Fatal("Next should be set")
	}
	want := "http://localhost:8000/api/recipes?limit=6&page=2"
	if *resp.Next != want {
		t.Errorf("Next = %s, want %s", *resp.Next, want)
	}
}

func TestNewResponse_MiddlePage(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/api/recipes?page=2", nil)
	params := Params{Page: 2, Limit: 6}

	resp := NewResponse(r, "http://localhost:8000", 13, params, []int{})

	if resp.Next == nil {
		t.Fatal("Next should be set")
	}
	if *resp.Next != "http://localhost:8000/api/recipes?page=3" {
		t.Errorf("Next = %s", *resp.Next)
	}

	// Previous for page 2 drops the page parameter
	if resp.Previous == nil {
		t.Fatal("Previous should be set")
	}
	if *resp.Previous != "http://localhost:8000/api/recipes" {
		t.Errorf("Previous = %s", *resp.Previous)
	}
}

func TestNewResponse_LastPage(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/api/recipes?page=3", nil)
	params := Params{Page: 3, Limit: 6}

	resp := NewResponse(r, "http://localhost:8000", 13, params, []int{})

	if resp.Next != nil {
		t.Errorf("Next should be nil on last page, got %s", *resp.Next)
	}
	if resp.Previous == nil {
		t.Fatal("Previous should be set")
	}
	if *resp.Previous != "http://localhost:8000/api/recipes?page=2" {
		t.Errorf("Previous = %s", *resp.Previous)
	}
}

func TestNewResponse_EmptyResult(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/api/recipes", nil)
	params := Params{Page: 1, Limit: 6}

	resp := NewResponse(r, "http://localhost:8000", 0, params, []int{})

	if resp.Next != nil || resp.Previous != nil {
		t.Error("Next and Previous should be nil for empty result")
	}
}
