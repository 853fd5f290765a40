package main

import (
	"slices"
	"testing"

	"ripmap/internal/catalog"
)

func TestParseNumberList(t *testing.T) {
	tests := []struct {
		value   string
		want    []int
		wantErr bool
	}{
		{value: "3", want: []int{3}},
		{value: "1-3,5", want: []int{1, 2, 3, 5}},
		{value: "5, 2 ,4-4", want: []int{5, 2, 4}},
		{value: "", wantErr: true},
		{value: "3-1", wantErr: true},
		{value: "x", wantErr: true},
		{value: "-2", wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseNumberList(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseNumberList(%q) expected error, got %v", tc.value, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseNumberList(%q) returned error: %v", tc.value, err)
		}
		if !slices.Equal(got, tc.want) {
			t.Fatalf("parseNumberList(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRippedFrom(t *testing.T) {
	if got := rippedFrom(catalog.Episode{Number: 1}); got != "" {
		t.Fatalf("expected empty rip history, got %q", got)
	}
	whole := catalog.Episode{Number: 1, DiscID: "abc", DiscTitle: 4}
	if got := rippedFrom(whole); got != "4" {
		t.Fatalf("expected whole title, got %q", got)
	}
	chapters := catalog.Episode{Number: 2, DiscID: "abc", DiscTitle: 1, StartChapter: 3, EndChapter: 12}
	if got := rippedFrom(chapters); got != "1.03-12" {
		t.Fatalf("expected chapter range, got %q", got)
	}
}
