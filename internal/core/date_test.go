package core

import (
	"encoding/json"
	"testing"
)

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CalendarDate
		wantErr bool
	}{
		{name: "plain date", input: "2024-05-10", want: NewCalendarDate(2024, 5, 10)},
		{name: "padded", input: " 2024-01-02 ", want: NewCalendarDate(2024, 1, 2)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "partial", input: "2024-05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCalendarDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCalendarDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCalendarDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalendarDateCompare(t *testing.T) {
	a := NewCalendarDate(2024, 5, 10)
	b := NewCalendarDate(2024, 5, 11)
	c := NewCalendarDate(2024, 6, 1)
	d := NewCalendarDate(2025, 1, 1)

	if !a.Before(b) || !b.Before(c) || !c.Before(d) {
		t.Error("expected a < b < c < d")
	}
	if !d.After(a) {
		t.Error("expected d > a")
	}
	if a.Compare(a) != 0 {
		t.Error("expected a == a")
	}
}

func TestCalendarDateSameMonth(t *testing.T) {
	d := NewCalendarDate(2024, 5, 31)
	if !d.SameMonth(2024, 5) {
		t.Error("expected 2024-05-31 to be in 2024-05")
	}
	if d.SameMonth(2024, 6) || d.SameMonth(2023, 5) {
		t.Error("expected month/year mismatch to be false")
	}
}

func TestCalendarDateJSONRoundTrip(t *testing.T) {
	d := NewCalendarDate(2024, 5, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-05-01"` {
		t.Errorf("marshal = %s, want \"2024-05-01\"", data)
	}

	var back CalendarDate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestCalendarDateUnmarshalTimestamp(t *testing.T) {
	// Older clients stored full timestamps; the local calendar day wins.
	var d CalendarDate
	if err := json.Unmarshal([]byte(`"2024-05-10T00:00:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if d.IsZero() {
		t.Error("expected non-zero date from timestamp")
	}
}

func TestCalendarDateValidate(t *testing.T) {
	tests := []struct {
		name    string
		date    CalendarDate
		wantErr bool
	}{
		{name: "valid", date: NewCalendarDate(2024, 5, 10), wantErr: false},
		{name: "zero", date: CalendarDate{}, wantErr: true},
		{name: "bad month", date: NewCalendarDate(2024, 13, 1), wantErr: true},
		{name: "bad day", date: NewCalendarDate(2024, 1, 32), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.date.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
