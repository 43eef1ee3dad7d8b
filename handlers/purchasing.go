// handlers/purchasing.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

// prOut reports the reconciled status alongside the raw record.
type prOut struct {
	models.PurchaseRequest
	EffectiveStatus string `json:"effectiveStatus"`
}

func wrapPR(p models.PurchaseRequest) prOut {
	return prOut{PurchaseRequest: p, EffectiveStatus: p.EffectiveStatus()}
}

func ListPurchaseRequests(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.PurchaseRequest{}).Preload("Decision")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("request_no ILIKE ? OR requested_by ILIKE ? OR department ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var requests []models.PurchaseRequest
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	out := make([]prOut, len(requests))
	for i, p := range requests {
		out[i] = wrapPR(p)
	}
	utils.JSONResultsTotal(w, http.StatusOK, out, total)
}

func GetPurchaseRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase request id")
		return
	}
	var request models.PurchaseRequest
	if err := config.DB.Preload("Decision").First(&request, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "purchase request not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, wrapPR(request))
}

func CreatePurchaseRequest(w http.ResponseWriter, r *http.Request) {
	var request models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	request.ID = uuid.Nil
	request.Status = models.PRStatusPending
	request.Decision = nil
	if request.RequestedBy == "" {
		if claims := middleware.GetClaims(r); claims != nil {
			request.RequestedBy = claims.Name
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		no, err := nextDocumentNumber(tx, &models.PurchaseRequest{}, documentPrefix("purchaseRequestPrefix", "PR"))
		if err != nil {
			return err
		}
		request.RequestNo = no
		return tx.Create(&request).Error
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusCreated, wrapPR(request))
}

func UpdatePurchaseRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase request id")
		return
	}
	var request models.PurchaseRequest
	if err := config.DB.Preload("Decision").First(&request, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "purchase request not found")
		return
	}
	if request.EffectiveStatus() != models.PRStatusPending {
		utils.JSONError(w, http.StatusConflict, "decided purchase requests cannot be edited")
		return
	}
	requestNo, status := request.RequestNo, request.Status
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	request.ID = id
	request.RequestNo = requestNo
	request.Status = status
	request.Decision = nil
	if err := config.DB.Omit("Decision").Save(&request).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, wrapPR(request))
}

func DeletePurchaseRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase request id")
		return
	}
	if err := config.DB.Delete(&models.PurchaseRequest{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "purchase request deleted")
}

type decisionReq struct {
	Decision string `json:"decision"` // approved | rejected
}

// DecidePurchaseRequest records an approval or rejection. The decision is a
// row of its own so the audit trail survives later status edits, and the
// request's status is settled in the same transaction.
func DecidePurchaseRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase request id")
		return
	}
	var req decisionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Decision != models.PRStatusApproved && req.Decision != models.PRStatusRejected {
		utils.JSONError(w, http.StatusBadRequest, "decision must be approved or rejected")
		return
	}
	claims := middleware.GetClaims(r)
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var request models.PurchaseRequest
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Decision").First(&request, "id = ?", id).Error; err != nil {
			return err
		}
		if request.EffectiveStatus() != models.PRStatusPending {
			return errAlreadyDecided
		}
		decision := models.ApprovalDecision{
			PurchaseRequestID: request.ID,
			Decision:          req.Decision,
			DecidedBy:         claims.Name,
			DecidedAt:         models.JSONTime(time.Now()),
		}
		if err := tx.Create(&decision).Error; err != nil {
			return err
		}
		request.Status = req.Decision
		request.Decision = &decision
		return tx.Model(&models.PurchaseRequest{}).
			Where("id = ?", request.ID).
			Update("status", req.Decision).Error
	})
	if err != nil {
		switch {
		case err == errAlreadyDecided:
			utils.JSONError(w, http.StatusConflict, "purchase request is already decided")
		case err == gorm.ErrRecordNotFound:
			utils.JSONError(w, http.StatusNotFound, "purchase request not found")
		default:
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}
	utils.JSONResult(w, http.StatusOK, wrapPR(request))
}

var errAlreadyDecided = &alreadyDecidedError{}

type alreadyDecidedError struct{}

func (e *alreadyDecidedError) Error() string { return "purchase request is already decided" }

type rfqReq struct {
	Suppliers json.RawMessage  `json:"suppliers"`
	ClosesAt  *models.JSONTime `json:"closesAt"`
}

// CreateRFQ raises a request for quotation from an approved purchase request,
// copying its items.
func CreateRFQ(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase request id")
		return
	}
	var req rfqReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var request models.PurchaseRequest
	if err := config.DB.Preload("Decision").First(&request, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "purchase request not found")
		return
	}
	if request.EffectiveStatus() != models.PRStatusApproved {
		utils.JSONError(w, http.StatusConflict, "purchase request is not approved")
		return
	}

	rfq := models.RFQ{
		PurchaseRequestID: request.ID,
		Items:             request.Items,
		ClosesAt:          req.ClosesAt,
	}
	if len(req.Suppliers) > 0 {
		rfq.Suppliers = []byte(req.Suppliers)
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		no, err := nextDocumentNumber(tx, &models.RFQ{}, documentPrefix("rfqPrefix", "RFQ"))
		if err != nil {
			return err
		}
		rfq.RFQNo = no
		return tx.Create(&rfq).Error
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusCreated, rfq)
}

func ListRFQs(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)
	q := config.DB.Model(&models.RFQ{})
	if raw := r.URL.Query().Get("purchaseRequestId"); raw != "" {
		prID, err := uuid.Parse(raw)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid purchaseRequestId")
			return
		}
		q = q.Where("purchase_request_id = ?", prID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var rfqs []models.RFQ
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&rfqs).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, rfqs, total)
}

func ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.PurchaseOrder{})
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("order_no ILIKE ? OR supplier ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var orders []models.PurchaseOrder
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, orders, total)
}

func GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase order id")
		return
	}
	var order models.PurchaseOrder
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "purchase order not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, order)
}

func CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var order models.PurchaseOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(order.Supplier) == "" {
		utils.JSONError(w, http.StatusBadRequest, "supplier is required")
		return
	}
	// A PO raised from a purchase request requires that request to be
	// approved first.
	if order.PurchaseRequestID != nil {
		var request models.PurchaseRequest
		if err := config.DB.Preload("Decision").First(&request, "id = ?", *order.PurchaseRequestID).Error; err != nil {
			utils.JSONError(w, http.StatusBadRequest, "unknown purchase request")
			return
		}
		if request.EffectiveStatus() != models.PRStatusApproved {
			utils.JSONError(w, http.StatusConflict, "purchase request is not approved")
			return
		}
		if len(order.Items) == 0 {
			order.Items = request.Items
		}
	}
	order.ID = uuid.Nil
	order.Status = models.PRStatusPending

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		no, err := nextDocumentNumber(tx, &models.PurchaseOrder{}, documentPrefix("purchaseOrderPrefix", "PO"))
		if err != nil {
			return err
		}
		order.OrderNo = no
		return tx.Create(&order).Error
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusCreated, order)
}

func UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase order id")
		return
	}
	var order models.PurchaseOrder
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "purchase order not found")
		return
	}
	orderNo, prID := order.OrderNo, order.PurchaseRequestID
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	order.ID = id
	order.OrderNo = orderNo
	order.PurchaseRequestID = prID
	if err := config.DB.Save(&order).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, order)
}

func DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid purchase order id")
		return
	}
	if err := config.DB.Delete(&models.PurchaseOrder{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "purchase order deleted")
}
