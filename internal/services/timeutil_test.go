package services

import "testing"

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"10:30", 630, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"0900", 0, true},
		{"09:00:00", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := MinutesOfDay(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("MinutesOfDay(%q) = %d, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("MinutesOfDay(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("MinutesOfDay(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-06-01", false},
		{"2024-12-31", false},
		{"2024-02-29", false}, // leap year
		{"2023-02-29", true},
		{"2024-6-1", true}, // non-canonical
		{"2024-13-01", true},
		{"01-06-2024", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			parsed, err := ParseDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) succeeded, want error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tc.in, err)
			}
			// Round-trips exactly
			if got := FormatDate(parsed); got != tc.in {
				t.Errorf("FormatDate(ParseDate(%q)) = %q", tc.in, got)
			}
		})
	}
}
