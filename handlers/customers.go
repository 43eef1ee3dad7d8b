// handlers/customers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

func ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	_ = page

	q := config.DB.Model(&models.Customer{})
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR contact_person ILIKE ? OR vat_number ILIKE ?", like, like, like)
	}
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var customers []models.Customer
	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, customers, total)
}

// routeOut augments a route with the great-circle distance between its
// endpoints. Distance is omitted when either endpoint has no coordinates.
type routeOut struct {
	models.Route
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

func wrapRoute(route models.Route) routeOut {
	return routeOut{Route: route, DistanceKm: routeDistanceKm(route)}
}

func wrapRoutes(routes []models.Route) []routeOut {
	out := make([]routeOut, 0, len(routes))
	for _, route := range routes {
		out = append(out, wrapRoute(route))
	}
	return out
}

func routeDistanceKm(route models.Route) *float64 {
	if route.From == nil || route.To == nil {
		return nil
	}
	if !route.From.HasCoordinates() || !route.To.HasCoordinates() {
		return nil
	}
	km := utils.HaversineKm(route.From.Point(), route.To.Point())
	return &km
}

// customerOut carries the customer with distance-annotated routes.
type customerOut struct {
	models.Customer
	Routes []routeOut `json:"routes,omitempty"`
}

func GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var customer models.Customer
	err := config.DB.
		Preload("Routes.From").
		Preload("Routes.To").
		First(&customer, "id = ?", id).Error
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "customer not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, customerOut{Customer: customer, Routes: wrapRoutes(customer.Routes)})
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(customer.Name) == "" {
		utils.JSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	customer.ID = uuid.Nil
	customer.IsActive = true
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusCreated, customer)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "customer not found")
		return
	}
	// Decode over the loaded record so omitted fields keep their values.
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	// Routes are managed through their own endpoints.
	customer.ID = id
	customer.Routes = nil
	if err := config.DB.Omit("Routes").Save(&customer).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, customer)
}

func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var inFlight int64
	config.DB.Model(&models.Order{}).
		Where("customer_id = ? AND status = ?", id, models.StatusInProgress).
		Count(&inFlight)
	if inFlight > 0 {
		utils.JSONError(w, http.StatusConflict, "customer has waybills in progress")
		return
	}
	if err := config.DB.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "customer deleted")
}

// ListCustomerRoutes returns the customer's configured routes with both
// endpoints preloaded.
func ListCustomerRoutes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var routes []models.Route
	err := config.DB.
		Preload("From").
		Preload("To").
		Where("customer_id = ?", id).
		Order("created_at asc").
		Find(&routes).Error
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResults(w, http.StatusOK, wrapRoutes(routes))
}

type routeReq struct {
	FromID uuid.UUID `json:"fromId"`
	ToID   uuid.UUID `json:"toId"`
}

func CreateCustomerRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var req routeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.FromID == uuid.Nil || req.ToID == uuid.Nil {
		utils.JSONError(w, http.StatusBadRequest, "fromId and toId are required")
		return
	}
	if req.FromID == req.ToID {
		utils.JSONError(w, http.StatusBadRequest, "origin and destination must differ")
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "customer not found")
		return
	}
	var locCount int64
	config.DB.Model(&models.Location{}).
		Where("id IN ?", []uuid.UUID{req.FromID, req.ToID}).
		Count(&locCount)
	if locCount != 2 {
		utils.JSONError(w, http.StatusBadRequest, "unknown location id")
		return
	}
	route := models.Route{CustomerID: id, FromID: req.FromID, ToID: req.ToID}
	if err := config.DB.Create(&route).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	config.DB.Preload("From").Preload("To").First(&route, "id = ?", route.ID)
	utils.JSONResult(w, http.StatusCreated, wrapRoute(route))
}

func DeleteCustomerRoute(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	routeID, ok := pathUUID(r, "routeId")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid route id")
		return
	}
	res := config.DB.Where("customer_id = ?", customerID).Delete(&models.Route{}, "id = ?", routeID)
	if res.Error != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(w, http.StatusNotFound, "route not found")
		return
	}
	utils.JSONMessage(w, http.StatusOK, "route deleted")
}

// CustomerFromOptions lists the distinct origin locations available on the
// customer's routes, in the order the routes were configured. The waybill
// form populates its origin dropdown from this.
func CustomerFromOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	routes, err := customerRoutes(id)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResults(w, http.StatusOK, locationsByIDs(models.AvailableFromLocations(routes)))
}

// CustomerToOptions lists the destinations reachable from the chosen origin.
// Without a from parameter the list is empty, matching the disabled
// destination dropdown before an origin is picked.
func CustomerToOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	originID := uuid.Nil
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid from location id")
			return
		}
		originID = parsed
	}
	routes, err := customerRoutes(id)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResults(w, http.StatusOK, locationsByIDs(models.AvailableToLocations(routes, originID)))
}

func customerRoutes(customerID uuid.UUID) ([]models.Route, error) {
	var routes []models.Route
	err := config.DB.
		Where("customer_id = ?", customerID).
		Order("created_at asc").
		Find(&routes).Error
	return routes, err
}

// locationsByIDs resolves ids to Location records preserving the input order.
func locationsByIDs(ids []uuid.UUID) []models.Location {
	out := make([]models.Location, 0, len(ids))
	if len(ids) == 0 {
		return out
	}
	var locs []models.Location
	if err := config.DB.Where("id IN ?", ids).Find(&locs).Error; err != nil {
		return out
	}
	byID := make(map[uuid.UUID]models.Location, len(locs))
	for _, l := range locs {
		byID[l.ID] = l
	}
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
