// handlers/orders.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

// orderOut wraps an order with the server-computed close availability so list
// and detail screens don't re-derive it.
type orderOut struct {
	models.Order
	CanClose bool `json:"canClose"`
}

func wrapOrder(o models.Order) orderOut {
	return orderOut{Order: o, CanClose: o.CanClose()}
}

func ListOrders(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.Order{}).
		Preload("Customer").
		Preload("From").
		Preload("To").
		Preload("Vehicle").
		Preload("Driver")

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := models.NormalizeStatus(raw)
		if !ok {
			utils.JSONError(w, http.StatusBadRequest, "unknown status "+raw)
			return
		}
		q = q.Where("status = ?", status)
	}
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid customerId")
			return
		}
		q = q.Where("customer_id = ?", customerID)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("order_no ILIKE ? OR container_no ILIKE ? OR trip_no ILIKE ? OR seal_no ILIKE ?",
			like, like, like, like)
	}
	if from := r.URL.Query().Get("fromDate"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := r.URL.Query().Get("toDate"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var orders []models.Order
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	out := make([]orderOut, len(orders))
	for i, o := range orders {
		out[i] = wrapOrder(o)
	}
	utils.JSONResultsTotal(w, http.StatusOK, out, total)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var order models.Order
	err := config.DB.
		Preload("Customer").
		Preload("From").
		Preload("To").
		Preload("Vehicle").
		Preload("Driver").
		Preload("Contract").
		First(&order, "id = ?", id).Error
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "order not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, wrapOrder(order))
}

// resetNewOrder clears everything the server assigns itself. New waybills
// always open in progress with a generated number, whatever the client sent;
// closing goes through its own endpoint.
func resetNewOrder(o *models.Order) {
	o.ID = uuid.Nil
	o.OrderNo = ""
	o.Status = models.StatusInProgress
	o.CompletedUnloading = nil
	o.KmIn = nil
}

func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if order.CustomerID == uuid.Nil {
		utils.JSONError(w, http.StatusBadRequest, "customerId is required")
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		utils.JSONError(w, http.StatusBadRequest, "unknown customer")
		return
	}

	// Origin and destination, when both supplied, must be a configured route
	// for this customer.
	if order.FromID != nil && order.ToID != nil {
		routes, err := customerRoutes(order.CustomerID)
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
			return
		}
		if !models.HasRoute(routes, *order.FromID, *order.ToID) {
			utils.JSONError(w, http.StatusBadRequest, "no configured route between the chosen locations")
			return
		}
	}

	resetNewOrder(&order)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		no, err := nextDocumentNumber(tx, &models.Order{}, documentPrefix("waybillPrefix", "WB"))
		if err != nil {
			return err
		}
		order.OrderNo = no
		return tx.Create(&order).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			utils.JSONError(w, http.StatusConflict, "order number already exists")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}
	utils.JSONResult(w, http.StatusCreated, wrapOrder(order))
}

func UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var order models.Order
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "order not found")
		return
	}
	if order.Status.IsTerminal() {
		utils.JSONError(w, http.StatusConflict, "closed waybills cannot be edited")
		return
	}

	// Identity and lifecycle fields never move through a plain update.
	orderNo, status, customerID := order.OrderNo, order.Status, order.CustomerID
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	order.ID = id
	order.OrderNo = orderNo
	order.Status = status
	order.CustomerID = customerID

	if order.FromID != nil && order.ToID != nil {
		routes, err := customerRoutes(order.CustomerID)
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
			return
		}
		if !models.HasRoute(routes, *order.FromID, *order.ToID) {
			utils.JSONError(w, http.StatusBadRequest, "no configured route between the chosen locations")
			return
		}
	}

	if err := config.DB.Omit("Customer", "From", "To", "Vehicle", "Driver", "Contract").
		Save(&order).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	config.DB.
		Preload("Customer").
		Preload("From").
		Preload("To").
		Preload("Vehicle").
		Preload("Driver").
		First(&order, "id = ?", id)
	utils.JSONResult(w, http.StatusOK, wrapOrder(order))
}

func DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var order models.Order
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "order not found")
		return
	}
	if order.Status.IsTerminal() {
		utils.JSONError(w, http.StatusConflict, "closed waybills cannot be deleted")
		return
	}
	if err := config.DB.Delete(&order).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "order deleted")
}

type closeOrderReq struct {
	Reason string `json:"reason"`
	models.NormalClose
}

// CloseOrder finalizes a waybill. reason selects the path: "accident" and
// "breakdown" stamp fixed remarks and synthesize kmIn from the start
// odometer; "normal" (the default) takes the full closing form.
func CloseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req closeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	reason := models.CloseReason(req.Reason)
	if reason == "" {
		reason = models.CloseNormal
	}
	switch reason {
	case models.CloseNormal, models.CloseAccident, models.CloseBreakdown:
	default:
		utils.JSONError(w, http.StatusBadRequest, "unknown close reason "+req.Reason)
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return err
		}
		if !order.CanClose() {
			return errOrderNotClosable
		}
		now := time.Now()
		if reason == models.CloseNormal {
			if err := order.ApplyNormalClose(req.NormalClose, now); err != nil {
				return err
			}
		} else {
			if err := order.ApplyIncidentClose(reason, now); err != nil {
				return err
			}
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		switch {
		case err == errOrderNotClosable:
			utils.JSONError(w, http.StatusConflict, "order is not in a closable state")
		case err == gorm.ErrRecordNotFound:
			utils.JSONError(w, http.StatusNotFound, "order not found")
		default:
			utils.JSONError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	utils.JSONResult(w, http.StatusOK, wrapOrder(order))
}

var errOrderNotClosable = &notClosableError{}

type notClosableError struct{}

func (e *notClosableError) Error() string { return "order is not in a closable state" }

type statusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// OrdersSummary returns per-status counts for the dashboard cards.
func OrdersSummary(w http.ResponseWriter, r *http.Request) {
	var counts []statusCount
	err := config.DB.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&counts).Error
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}

	summary := map[string]int64{
		string(models.StatusInProgress):      0,
		string(models.StatusClosed):          0,
		string(models.StatusClosedAccident):  0,
		string(models.StatusClosedBreakdown): 0,
	}
	var total int64
	for _, c := range counts {
		// Old rows may still carry legacy aliases.
		status, _ := models.NormalizeStatus(string(c.Status))
		summary[string(status)] += c.Count
		total += c.Count
	}

	var totalWeight float64
	config.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&totalWeight)

	utils.JSONResult(w, http.StatusOK, map[string]interface{}{
		"total":       total,
		"totalWeight": totalWeight,
		"byStatus":    summary,
	})
}
