package core

import (
	"encoding/json"
	"testing"
)

func TestDateAddMonths(t *testing.T) {
	cases := []struct {
		start  Date
		months int
		want   string
	}{
		{NewDate(2024, 1, 15), 1, "2024-02-15"},
		{NewDate(2024, 1, 15), 2, "2024-03-15"},
		{NewDate(2024, 11, 30), 2, "2025-01-30"},
		// Shorter target month rolls over, ordinary calendar addition.
		{NewDate(2024, 1, 31), 1, "2024-03-02"}, // leap year
		{NewDate(2023, 1, 31), 1, "2023-03-03"},
	}
	for _, tc := range cases {
		if got := tc.start.AddMonths(tc.months).String(); got != tc.want {
			t.Fatalf("%s +%d months = %s, want %s", tc.start, tc.months, got, tc.want)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 7, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-07-09"` {
		t.Fatalf("unexpected encoding %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip changed date: %s != %s", back, d)
	}
}

func TestDateUnmarshalRejectsNonString(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`12345`), &d); err == nil {
		t.Fatal("expected error for non-string date")
	}
}
