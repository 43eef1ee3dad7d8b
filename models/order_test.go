package models

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   OrderStatus
		wantOK bool
	}{
		{"InProgress", StatusInProgress, true},
		{"Pending", StatusInProgress, true},
		{"", StatusInProgress, true},
		{"Closed", StatusClosed, true},
		{"Delivered", StatusClosed, true},
		{"ClosedAccident", StatusClosedAccident, true},
		{"ClosedBreakdown", StatusClosedBreakdown, true},
		{"Cancelled", OrderStatus("Cancelled"), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeStatus(%q) = (%s, %v), want (%s, %v)",
					tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	closed := []OrderStatus{StatusClosed, StatusClosedAccident, StatusClosedBreakdown}

	for _, next := range closed {
		if !CanTransition(StatusInProgress, next) {
			t.Errorf("InProgress -> %s should be allowed", next)
		}
	}
	// Terminal states allow nothing, including reopening.
	for _, current := range closed {
		for _, next := range append(closed, StatusInProgress) {
			if CanTransition(current, next) {
				t.Errorf("%s -> %s should be blocked", current, next)
			}
		}
	}
	if CanTransition(StatusInProgress, StatusInProgress) {
		t.Error("self transition should be blocked")
	}
}

func TestCanClose(t *testing.T) {
	unloaded := JSONTime(time.Now())
	km := FlexFloat(250)

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"in progress, open record", Order{Status: StatusInProgress}, true},
		{"already closed", Order{Status: StatusClosed}, false},
		{"closed by accident", Order{Status: StatusClosedAccident}, false},
		{
			"unloading done but no kmIn yet",
			Order{Status: StatusInProgress, CompletedUnloading: &unloaded},
			true,
		},
		{
			"kmIn set but no unloading time",
			Order{Status: StatusInProgress, KmIn: &km},
			true,
		},
		{
			"both closing fields populated",
			Order{Status: StatusInProgress, CompletedUnloading: &unloaded, KmIn: &km},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.CanClose(); got != tt.want {
				t.Errorf("CanClose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyIncidentClose(t *testing.T) {
	t.Run("accident with start odometer", func(t *testing.T) {
		start := FlexFloat(120)
		o := Order{Status: StatusInProgress, StartKms: &start}
		before := time.Now()

		if err := o.ApplyIncidentClose(CloseAccident, time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != StatusClosedAccident {
			t.Errorf("status = %s, want ClosedAccident", o.Status)
		}
		if o.Remarks != "Waybill closed due to accident" {
			t.Errorf("remarks = %q", o.Remarks)
		}
		if o.KmIn == nil || *o.KmIn != 120 {
			t.Errorf("kmIn = %v, want 120", o.KmIn)
		}
		if o.CompletedUnloading == nil || o.CompletedUnloading.Time().Before(before) {
			t.Error("completedUnloading should be stamped with the closing time")
		}
	})

	t.Run("breakdown without start odometer", func(t *testing.T) {
		o := Order{Status: StatusInProgress}
		if err := o.ApplyIncidentClose(CloseBreakdown, time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != StatusClosedBreakdown {
			t.Errorf("status = %s, want ClosedBreakdown", o.Status)
		}
		if o.Remarks != "Waybill closed due to breakdown" {
			t.Errorf("remarks = %q", o.Remarks)
		}
		if o.KmIn == nil || *o.KmIn != 0 {
			t.Errorf("kmIn = %v, want 0", o.KmIn)
		}
	})

	t.Run("rejects normal reason", func(t *testing.T) {
		o := Order{Status: StatusInProgress}
		if err := o.ApplyIncidentClose(CloseNormal, time.Now()); err == nil {
			t.Error("expected error for non-incident reason")
		}
	})

	t.Run("rejects terminal order", func(t *testing.T) {
		o := Order{Status: StatusClosed}
		if err := o.ApplyIncidentClose(CloseAccident, time.Now()); err == nil {
			t.Error("expected error closing an already closed order")
		}
		if o.Status != StatusClosed {
			t.Errorf("status mutated to %s on failed close", o.Status)
		}
	})
}

func TestApplyNormalClose(t *testing.T) {
	km := FlexFloat(480)

	t.Run("full form", func(t *testing.T) {
		o := Order{Status: StatusInProgress}
		form := NormalClose{
			KmIn:                    &km,
			Remarks:                 "delivered in full",
			RecipientAcknowledgment: AckFullyReceived,
			PodNumber:               "POD-991",
		}
		if err := o.ApplyNormalClose(form, time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != StatusClosed {
			t.Errorf("status = %s, want Closed", o.Status)
		}
		if o.KmIn == nil || *o.KmIn != 480 {
			t.Errorf("kmIn = %v, want 480", o.KmIn)
		}
		if o.CompletedUnloading == nil || o.CompletedUnloading.IsZero() {
			t.Error("completedUnloading should be stamped when unset")
		}
		if o.RecipientAcknowledgment != AckFullyReceived {
			t.Errorf("acknowledgment = %q", o.RecipientAcknowledgment)
		}
	})

	t.Run("existing unloading time is kept", func(t *testing.T) {
		unloaded := JSONTime(time.Now().Add(-2 * time.Hour))
		o := Order{Status: StatusInProgress, CompletedUnloading: &unloaded}
		if err := o.ApplyNormalClose(NormalClose{KmIn: &km}, time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !o.CompletedUnloading.Time().Equal(unloaded.Time()) {
			t.Error("completedUnloading was overwritten")
		}
	})

	t.Run("kmIn required", func(t *testing.T) {
		o := Order{Status: StatusInProgress}
		if err := o.ApplyNormalClose(NormalClose{}, time.Now()); err == nil {
			t.Error("expected error when kmIn is missing")
		}
	})

	t.Run("invalid acknowledgment rejected", func(t *testing.T) {
		o := Order{Status: StatusInProgress}
		form := NormalClose{KmIn: &km, RecipientAcknowledgment: "Excellent"}
		if err := o.ApplyNormalClose(form, time.Now()); err == nil {
			t.Error("expected error for unknown acknowledgment value")
		}
	})

	t.Run("terminal order rejected", func(t *testing.T) {
		o := Order{Status: StatusClosedBreakdown}
		if err := o.ApplyNormalClose(NormalClose{KmIn: &km}, time.Now()); err == nil {
			t.Error("expected error closing a terminal order")
		}
	})
}

func TestValidAcknowledgment(t *testing.T) {
	for _, v := range []string{AckGood, AckFullyReceived, AckBroken, AckPartially} {
		if !ValidAcknowledgment(v) {
			t.Errorf("%q should be valid", v)
		}
	}
	for _, v := range []string{"", "good", "Received", "OK"} {
		if ValidAcknowledgment(v) {
			t.Errorf("%q should be invalid", v)
		}
	}
}
