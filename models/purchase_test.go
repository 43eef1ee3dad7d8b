package models

import (
	"testing"
	"time"
)

func TestEffectiveStatus(t *testing.T) {
	approved := &ApprovalDecision{Decision: PRStatusApproved, DecidedBy: "ops", DecidedAt: JSONTime(time.Now())}
	rejected := &ApprovalDecision{Decision: PRStatusRejected, DecidedBy: "ops", DecidedAt: JSONTime(time.Now())}

	tests := []struct {
		name     string
		status   string
		decision *ApprovalDecision
		want     string
	}{
		{"pending without decision", PRStatusPending, nil, PRStatusPending},
		{"decision fills in pending status", PRStatusPending, approved, PRStatusApproved},
		{"rejection fills in pending status", PRStatusPending, rejected, PRStatusRejected},
		{"settled status wins over decision", PRStatusRejected, approved, PRStatusRejected},
		{"settled approval stands alone", PRStatusApproved, nil, PRStatusApproved},
		{"unknown status treated as pending", "draft", nil, PRStatusPending},
		{"unknown status defers to decision", "draft", approved, PRStatusApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := PurchaseRequest{Status: tt.status, Decision: tt.decision}
			if got := pr.EffectiveStatus(); got != tt.want {
				t.Errorf("EffectiveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
