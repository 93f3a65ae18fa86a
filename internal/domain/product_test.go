package domain

import "testing"

func TestParseProductStatus(t *testing.T) {
	tests := []struct {
		token   string
		want    ProductStatus
		wantErr bool
	}{
		{"ACTIVE", StatusActive, false},
		{"BLOCKED", StatusBlocked, false},
		{"DELETED", StatusDeleted, false},
		{"active", StatusActive, false},
		{"Blocked", StatusBlocked, false},
		{"", "", true},
		{"ARCHIVED", "", true},
		{"ACTIVE ", "", true},
	}

	for _, tc := range tests {
		got, err := ParseProductStatus(tc.token)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseProductStatus(%q) = %q, want error", tc.token, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProductStatus(%q) error: %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseProductStatus(%q) = %q, want %q", tc.token, got, tc.want)
		}
	}
}

func TestProductStatusValid(t *testing.T) {
	for _, status := range Statuses() {
		if !status.Valid() {
			t.Errorf("%q should be valid", status)
		}
	}
	for _, status := range []ProductStatus{"", "archived", "ACTIVE "} {
		if status.Valid() {
			t.Errorf("%q should not be valid", status)
		}
	}
}
