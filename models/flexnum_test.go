package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"plain number", `12.5`, 12.5, false},
		{"integer", `120`, 120, false},
		{"quoted number", `"12.5"`, 12.5, false},
		{"quoted integer", `"120"`, 120, false},
		{"quoted with spaces", `" 42 "`, 42, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"zero", `0`, 0, false},
		{"negative", `"-3.2"`, -3.2, false},
		{"non numeric string", `"abc"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if float64(f) != tt.want {
				t.Errorf("got %v, want %v", float64(f), tt.want)
			}
		})
	}
}

func TestFlexFloatMarshal(t *testing.T) {
	f := FlexFloat(99.5)
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Always re-emitted as a number, never a string.
	if string(b) != "99.5" {
		t.Errorf("got %s, want 99.5", b)
	}
}

// A payload field that arrived as a string round-trips as a number.
func TestFlexFloatCoercionInStruct(t *testing.T) {
	var o Order
	if err := json.Unmarshal([]byte(`{"weight":"1500","startKms":120}`), &o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Weight == nil || *o.Weight != 1500 {
		t.Errorf("weight = %v, want 1500", o.Weight)
	}
	if o.StartKms == nil || *o.StartKms != 120 {
		t.Errorf("startKms = %v, want 120", o.StartKms)
	}
}

func TestJSONTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			"rfc3339",
			`"2025-06-01T08:30:00Z"`,
			time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			"datetime-local",
			`"2025-06-01T08:30"`,
			time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			"plain date",
			`"2025-06-01"`,
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{"null", `null`, time.Time{}},
		{"empty string", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jt JSONTime
			if err := json.Unmarshal([]byte(tt.in), &jt); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !jt.Time().Equal(tt.want) {
				t.Errorf("got %v, want %v", jt.Time(), tt.want)
			}
		})
	}

	var jt JSONTime
	if err := json.Unmarshal([]byte(`"last tuesday"`), &jt); err == nil {
		t.Error("expected error for unparseable value")
	}
}

func TestJSONTimeMarshal(t *testing.T) {
	jt := JSONTime(time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC))
	b, err := json.Marshal(jt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"2025-06-01T08:30:00Z"` {
		t.Errorf("got %s", b)
	}
}
