package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"YYYY-MM-DD", "2006-01-02", false},
		{"MMMM D, YYYY", "January 2, 2006", false},
		{"MMM YY", "Jan 06", false},
		{"D/M", "2/1", false},
		{"[Week of] MMM D", "Week of Jan 2", false},
		{"[DD]", "DD", false},
		{"", "", true},
		{"[open", "", true},
		{"YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			got, err := Layout(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Layout(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("error %v should wrap ErrInvalidDateFormat", err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"spring 2025", "spring 2025", false},
		{"auto", "2025-03-07", false},
		{"AUTO", "2025-03-07", false},
		{"auto:long", "March 7, 2025", false},
		{"auto:US", "03/07/2025", false},
		{"auto:european", "07/03/2025", false},
		{"auto:DD.MM.YY", "07.03.25", false},
		{"auto:", "", true},
		{"automatic", "", true},
		{"auto:[oops", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(tt.value, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
