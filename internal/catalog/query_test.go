package catalog

import (
	"errors"
	"math"
	"net/url"
	"testing"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		raw     string
		want    []int64
		wantErr bool
	}{
		{raw: "1,2,3", want: []int64{1, 2, 3}},
		{raw: " 4 , 5", want: []int64{4, 5}},
		{raw: "7", want: []int64{7}},
		{raw: "", wantErr: true},
		{raw: "1,abc,3", wantErr: true},
		{raw: "1,,3", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseIDList(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("ParseIDList(%q): expected ErrValidation, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseIDList(%q): %v", tc.raw, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("ParseIDList(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("ParseIDList(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		}
	}
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter(url.Values{
		"genres":    {"1,x,3"},
		"artists":   {"9"},
		"order":     {"DATE"},
		"direction": {"desc"},
		"page":      {"2"},
	})
	if len(f.Genres) != 2 || f.Genres[0] != 1 || f.Genres[1] != 3 {
		t.Fatalf("unexpected genres %v", f.Genres)
	}
	if len(f.Artists) != 1 || f.Artists[0] != 9 {
		t.Fatalf("unexpected artists %v", f.Artists)
	}
	if f.Order != OrderDate || !f.Descending || f.Page != 2 {
		t.Fatalf("unexpected filter %+v", f)
	}
	if f.Offset() != PageSize {
		t.Fatalf("expected offset %d, got %d", PageSize, f.Offset())
	}

	def := ParseFilter(url.Values{"page": {"-3"}, "order": {"bogus"}})
	if def.Page != 1 || def.Order != "" || def.Descending || len(def.Genres) != 0 {
		t.Fatalf("unexpected default filter %+v", def)
	}
}

func TestFilterOffset(t *testing.T) {
	tests := []struct {
		page int
		want int
	}{
		{page: 0, want: 0},
		{page: 1, want: 0},
		{page: 3, want: 2 * PageSize},
		{page: math.MaxInt/PageSize + 1, want: math.MaxInt / PageSize * PageSize},
		{page: math.MaxInt/PageSize + 2, want: math.MaxInt},
		{page: 1024819115206086202, want: math.MaxInt},
		{page: math.MaxInt, want: math.MaxInt},
	}
	for _, tc := range tests {
		if got := (Filter{Page: tc.page}).Offset(); got != tc.want {
			t.Fatalf("Offset(page=%d) = %d, want %d", tc.page, got, tc.want)
		}
	}

	far := ParseFilter(url.Values{"page": {"1024819115206086202"}})
	if far.Offset() < 0 {
		t.Fatalf("negative offset for page %d", far.Page)
	}
}

func TestGenresIsACopy(t *testing.T) {
	list := Genres()
	if len(list) == 0 {
		t.Fatal("expected genres")
	}
	list[0].Name = "changed"
	if Genres()[0].Name == "changed" {
		t.Fatal("Genres returned shared backing array")
	}
	if !KnownGenre(list[0].ID) || KnownGenre(0) {
		t.Fatal("KnownGenre mismatch")
	}
}
