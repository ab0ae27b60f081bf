package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-3-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2024, time.March, 5) {
		t.Fatalf("expected 2024-03-05, got %s", d)
	}

	d, err = ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", d)
	}

	for _, bad := range []string{"", "05/03/2024", "2023-02-29", "2024-13-01"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 1, 1, 1, 0, 0, 0, loc)

	if got := DateOf(ts); got != NewDate(2024, 1, 1) {
		t.Fatalf("expected 2024-01-01, got %s", got)
	}
	if got := DateOf(ts.UTC()); got != NewDate(2023, 12, 31) {
		t.Fatalf("expected 2023-12-31, got %s", got)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, 1, 31)
	b := NewDate(2024, 2, 1)
	if !a.Before(b) || !b.After(a) {
		t.Fatal("expected 2024-01-31 before 2024-02-01")
	}
	if NewDate(2024, 2, 30) != NewDate(2024, 3, 1) {
		t.Fatal("expected overflowing day to normalize")
	}
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, 7, 4))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-07-04"` {
		t.Fatalf("unexpected encoding %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-07-04"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d != NewDate(2024, 7, 4) {
		t.Fatalf("unexpected decoded date %s", d)
	}

	if err := json.Unmarshal([]byte(`""`), &d); err != nil || !d.IsZero() {
		t.Fatalf("expected zero date, got %s (%v)", d, err)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &d); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDate_Format(t *testing.T) {
	if got := NewDate(2024, 3, 5).Format("_2/Jan/2006"); got != " 5/Mar/2024" {
		t.Fatalf("unexpected display format %q", got)
	}
}
