package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	var p PageRequest
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("Defaults() = %+v, want page 1 size 20", p)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", p.Offset())
	}

	p = PageRequest{Page: 3, PageSize: 10}
	p.Defaults()
	if p.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 1, 20, 41)
	if resp.Data == nil {
		t.Error("expected non-nil data slice")
	}
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		req       PageRequest
		wantData  []int
		wantPages int
	}{
		{name: "defaults", req: PageRequest{}, wantData: []int{1, 2, 3, 4, 5}, wantPages: 1},
		{name: "first_page", req: PageRequest{Page: 1, PageSize: 2}, wantData: []int{1, 2}, wantPages: 3},
		{name: "last_partial_page", req: PageRequest{Page: 3, PageSize: 2}, wantData: []int{5}, wantPages: 3},
		{name: "past_the_end", req: PageRequest{Page: 9, PageSize: 2}, wantData: []int{}, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Slice(items, tt.req)
			if len(resp.Data) != len(tt.wantData) {
				t.Fatalf("Data = %v, want %v", resp.Data, tt.wantData)
			}
			for i := range resp.Data {
				if resp.Data[i] != tt.wantData[i] {
					t.Errorf("Data = %v, want %v", resp.Data, tt.wantData)
				}
			}
			if resp.TotalItems != 5 {
				t.Errorf("TotalItems = %d, want 5", resp.TotalItems)
			}
			if resp.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", resp.TotalPages, tt.wantPages)
			}
		})
	}
}
