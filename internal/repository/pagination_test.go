package repository

import "testing"

func TestPagerLimit(t *testing.T) {
	if got := (Pager{PageSize: 20}).Limit(); got != 20 {
		t.Fatalf("expected limit 20, got %d", got)
	}
	if got := (Pager{PageSize: maxPageSize + 1}).Limit(); got != maxPageSize {
		t.Fatalf("expected limit capped at %d, got %d", maxPageSize, got)
	}
	if got := (Pager{}).Limit(); got != 0 {
		t.Fatalf("expected zero page size to pass through, got %d", got)
	}
}

func TestPagerOffset(t *testing.T) {
	if got := (Pager{Page: 3, PageSize: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Pager{Page: 0, PageSize: 10}).Offset(); got != 0 {
		t.Fatalf("invalid page should normalize to first page, got offset %d", got)
	}
	if got := (Pager{Page: -2, PageSize: 10}).Offset(); got != 0 {
		t.Fatalf("negative page should normalize to first page, got offset %d", got)
	}
}
