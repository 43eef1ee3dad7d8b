package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"p9e.in/fleetops/models"
)

func TestResetNewOrder(t *testing.T) {
	unloaded := models.JSONTime(time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC))
	kmIn := models.FlexFloat(420)
	order := models.Order{
		ID:                 uuid.New(),
		OrderNo:            "WB-999999",
		Status:             models.StatusClosed,
		CompletedUnloading: &unloaded,
		KmIn:               &kmIn,
	}

	resetNewOrder(&order)

	if order.ID != uuid.Nil {
		t.Error("client-supplied id should be cleared")
	}
	if order.OrderNo != "" {
		t.Errorf("client-supplied order number should be cleared, got %q", order.OrderNo)
	}
	if order.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", order.Status, models.StatusInProgress)
	}
	if order.CompletedUnloading != nil || order.KmIn != nil {
		t.Error("closing fields should be cleared on a new waybill")
	}
}
