// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "testing"

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{"default ok", DefaultCatalog(), false},
		{"zero height", Catalog{Widths: []int{100}, Height: 0}, true},
		{"empty widths", Catalog{Widths: nil, Height: 100}, true},
		{"non-decreasing", Catalog{Widths: []int{100, 200}, Height: 100}, true},
		{"negative width", Catalog{Widths: []int{100, -50}, Height: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLetterForWidthKnownWidths(t *testing.T) {
	c := DefaultCatalog()
	cases := map[int]string{1239: "A", 826: "B", 413: "C"}
	for width, want := range cases {
		if got := c.LetterForWidth(width); got != want {
			t.Fatalf("LetterForWidth(%d) = %q, want %q", width, got, want)
		}
	}
}

func TestLetterForWidthNearestNearMidpoint(t *testing.T) {
	c := DefaultCatalog()
	// 620 sits just above the 619.5 midpoint of 413 and 826: it is 206mm
	// from 826 and 207mm from 413, so the nearest width is 826.
	if got := c.LetterForWidth(620); got != "B" {
		t.Fatalf("LetterForWidth(620) = %q, want %q (nearest is 826)", got, "B")
	}
}

func TestSourceBlockForSmallestFit(t *testing.T) {
	c := DefaultCatalog()
	if got := c.SourceBlockFor(300); got != 413 {
		t.Fatalf("SourceBlockFor(300) = %d, want 413", got)
	}
	if got := c.SourceBlockFor(413); got != 413 {
		t.Fatalf("SourceBlockFor(413) = %d, want 413", got)
	}
}

func TestSourceBlockForExceedsCatalogUsesWidest(t *testing.T) {
	c := DefaultCatalog()
	if got := c.SourceBlockFor(2000); got != 1239 {
		t.Fatalf("SourceBlockFor(2000) = %d, want 1239 (widest fallback)", got)
	}
}
