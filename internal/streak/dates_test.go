package streak

import "testing"

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2025-06-10", "2025-06-11", 1},
		{"2025-06-11", "2025-06-11", 0},
		{"2025-06-08", "2025-06-11", 3},
		{"2025-06-11", "2025-06-10", -1},
		{"2025-06-30", "2025-07-01", 1},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2025-12-31", "2026-01-01", 1},
	}

	for _, tt := range tests {
		got, err := daysBetween(tt.from, tt.to)
		if err != nil {
			t.Errorf("daysBetween(%s, %s) failed: %v", tt.from, tt.to, err)
			continue
		}
		if got != tt.want {
			t.Errorf("daysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDaysBetweenInvalid(t *testing.T) {
	if _, err := daysBetween("garbage", "2025-06-11"); err == nil {
		t.Error("expected error for malformed from day")
	}
	if _, err := daysBetween("2025-06-11", "garbage"); err == nil {
		t.Error("expected error for malformed to day")
	}
}

func TestPreviousDay(t *testing.T) {
	tests := []struct{ day, want string }{
		{"2025-06-11", "2025-06-10"},
		{"2025-07-01", "2025-06-30"},
		{"2026-01-01", "2025-12-31"},
		{"2024-03-01", "2024-02-29"}, // leap year
	}
	for _, tt := range tests {
		if got := previousDay(tt.day); got != tt.want {
			t.Errorf("previousDay(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}
