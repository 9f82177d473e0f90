package models

import "testing"

func TestNewPaginateResult(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page       int64
		limit      int64
		wantPages  int64
	}{
		{"chia hết", 100, 1, 10, 10},
		{"có dư", 101, 2, 10, 11},
		{"ít hơn một trang", 3, 1, 10, 1},
		{"không có bản ghi", 0, 1, 10, 0},
		{"limit bằng 0", 0, 1, 0, 1},
		{"limit bằng tổng", 7, 1, 7, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := make([]int, 0)
			result := NewPaginateResult(data, tc.total, tc.page, tc.limit)
			if result.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, mong đợi %d (total=%d, limit=%d)", result.TotalPages, tc.wantPages, tc.total, tc.limit)
			}
			if result.TotalRecords != tc.total {
				t.Errorf("TotalRecords = %d, mong đợi %d", result.TotalRecords, tc.total)
			}
			if result.Page != tc.page {
				t.Errorf("Page = %d, mong đợi %d", result.Page, tc.page)
			}
			if result.Limit != tc.limit {
				t.Errorf("Limit = %d, mong đợi %d", result.Limit, tc.limit)
			}
		})
	}
}
