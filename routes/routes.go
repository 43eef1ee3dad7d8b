package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/fleetops/handlers"
	"p9e.in/fleetops/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.RequestLogger)

	api.HandleFunc("/profile", handlers.GetCurrentUser).Methods("GET")

	registerCustomerRoutes(api)
	registerMasterRoutes(api)
	registerOrderRoutes(api)
	registerProcurementRoutes(api)
	registerReportRoutes(api)
	registerFileRoutes(api)

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// crudHandlers holds handlers for a CRUD resource
type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource guarded by
// "<resource>:<action>" permissions.
func registerCRUDRoutes(router *mux.Router, path string, resource string, h crudHandlers) {
	router.Handle(path, middleware.RequirePermission(resource+":read")(
		http.HandlerFunc(h.getAll))).Methods("GET")
	router.Handle(path, middleware.RequirePermission(resource+":create")(
		http.HandlerFunc(h.create))).Methods("POST")
	router.Handle(path+"/{id}", middleware.RequirePermission(resource+":read")(
		http.HandlerFunc(h.getOne))).Methods("GET")
	router.Handle(path+"/{id}", middleware.RequirePermission(resource+":update")(
		http.HandlerFunc(h.update))).Methods("PUT", "PATCH")
	router.Handle(path+"/{id}", middleware.RequirePermission(resource+":delete")(
		http.HandlerFunc(h.delete))).Methods("DELETE")
}

func registerCustomerRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/customers", "customer", crudHandlers{
		getAll: handlers.ListCustomers,
		create: handlers.CreateCustomer,
		getOne: handlers.GetCustomer,
		update: handlers.UpdateCustomer,
		delete: handlers.DeleteCustomer,
	})

	// Route configuration and the waybill form's cascading dropdowns.
	api.Handle("/customers/{id}/routes", middleware.RequirePermission("route:read")(
		http.HandlerFunc(handlers.ListCustomerRoutes))).Methods("GET")
	api.Handle("/customers/{id}/routes", middleware.RequirePermission("route:create")(
		http.HandlerFunc(handlers.CreateCustomerRoute))).Methods("POST")
	api.Handle("/customers/{id}/routes/{routeId}", middleware.RequirePermission("route:delete")(
		http.HandlerFunc(handlers.DeleteCustomerRoute))).Methods("DELETE")
	api.Handle("/customers/{id}/route-options/from", middleware.RequirePermission("route:read")(
		http.HandlerFunc(handlers.CustomerFromOptions))).Methods("GET")
	api.Handle("/customers/{id}/route-options/to", middleware.RequirePermission("route:read")(
		http.HandlerFunc(handlers.CustomerToOptions))).Methods("GET")
}

func registerMasterRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/locations", "location", crudHandlers{
		getAll: handlers.ListLocations,
		create: handlers.CreateLocation,
		getOne: handlers.GetLocation,
		update: handlers.UpdateLocation,
		delete: handlers.DeleteLocation,
	})
	registerCRUDRoutes(api, "/vehicles", "vehicle", crudHandlers{
		getAll: handlers.ListVehicles,
		create: handlers.CreateVehicle,
		getOne: handlers.GetVehicle,
		update: handlers.UpdateVehicle,
		delete: handlers.DeleteVehicle,
	})
	registerCRUDRoutes(api, "/drivers", "driver", crudHandlers{
		getAll: handlers.ListDrivers,
		create: handlers.CreateDriver,
		getOne: handlers.GetDriver,
		update: handlers.UpdateDriver,
		delete: handlers.DeleteDriver,
	})
	registerCRUDRoutes(api, "/contracts", "contract", crudHandlers{
		getAll: handlers.ListContracts,
		create: handlers.CreateContract,
		getOne: handlers.GetContract,
		update: handlers.UpdateContract,
		delete: handlers.DeleteContract,
	})
}

func registerOrderRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/orders", "order", crudHandlers{
		getAll: handlers.ListOrders,
		create: handlers.CreateOrder,
		getOne: handlers.GetOrder,
		update: handlers.UpdateOrder,
		delete: handlers.DeleteOrder,
	})
	api.Handle("/orders/{id}/close", middleware.RequirePermission("order:close")(
		http.HandlerFunc(handlers.CloseOrder))).Methods("POST")
	api.Handle("/orders-summary", middleware.RequirePermission("order:read")(
		http.HandlerFunc(handlers.OrdersSummary))).Methods("GET")
}

func registerProcurementRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/purchase-requests", "purchase", crudHandlers{
		getAll: handlers.ListPurchaseRequests,
		create: handlers.CreatePurchaseRequest,
		getOne: handlers.GetPurchaseRequest,
		update: handlers.UpdatePurchaseRequest,
		delete: handlers.DeletePurchaseRequest,
	})
	api.Handle("/purchase-requests/{id}/decision", middleware.RequirePermission("purchase:approve")(
		http.HandlerFunc(handlers.DecidePurchaseRequest))).Methods("POST")
	api.Handle("/purchase-requests/{id}/rfq", middleware.RequirePermission("purchase:create")(
		http.HandlerFunc(handlers.CreateRFQ))).Methods("POST")
	api.Handle("/rfqs", middleware.RequirePermission("purchase:read")(
		http.HandlerFunc(handlers.ListRFQs))).Methods("GET")

	registerCRUDRoutes(api, "/purchase-orders", "purchase", crudHandlers{
		getAll: handlers.ListPurchaseOrders,
		create: handlers.CreatePurchaseOrder,
		getOne: handlers.GetPurchaseOrder,
		update: handlers.UpdatePurchaseOrder,
		delete: handlers.DeletePurchaseOrder,
	})
}

func registerReportRoutes(api *mux.Router) {
	api.Handle("/reports/waybill-register/excel", middleware.RequirePermission("report:export")(
		http.HandlerFunc(handlers.ExportWaybillRegisterExcel))).Methods("GET")
	api.Handle("/reports/waybill-register/csv", middleware.RequirePermission("report:export")(
		http.HandlerFunc(handlers.ExportWaybillRegisterCSV))).Methods("GET")
}

func registerFileRoutes(api *mux.Router) {
	api.Handle("/files/upload", middleware.RequireAnyPermission([]string{"order:update", "vehicle:update", "driver:update"})(
		http.HandlerFunc(handlers.UploadFile))).Methods("POST")
}

func registerAdminRoutes(admin *mux.Router) {
	// User management
	admin.Handle("/users", middleware.RequirePermission("user:read")(
		http.HandlerFunc(handlers.ListUsers))).Methods("GET")
	admin.Handle("/users", middleware.RequirePermission("user:create")(
		http.HandlerFunc(handlers.Register))).Methods("POST")
	admin.Handle("/users/{id}", middleware.RequirePermission("user:read")(
		http.HandlerFunc(handlers.GetUserByID))).Methods("GET")
	admin.Handle("/users/{id}", middleware.RequirePermission("user:update")(
		http.HandlerFunc(handlers.UpdateUser))).Methods("PUT")
	admin.Handle("/users/{id}", middleware.RequirePermission("user:delete")(
		http.HandlerFunc(handlers.DeactivateUser))).Methods("DELETE")

	// Role and permission management
	admin.Handle("/roles", middleware.RequirePermission("role:read")(
		http.HandlerFunc(handlers.ListRoles))).Methods("GET")
	admin.Handle("/roles", middleware.RequirePermission("role:create")(
		http.HandlerFunc(handlers.CreateRole))).Methods("POST")
	admin.Handle("/roles/{id}", middleware.RequirePermission("role:update")(
		http.HandlerFunc(handlers.UpdateRole))).Methods("PUT")
	admin.Handle("/roles/{id}", middleware.RequirePermission("role:delete")(
		http.HandlerFunc(handlers.DeleteRole))).Methods("DELETE")
	admin.Handle("/permissions", middleware.RequirePermission("role:read")(
		http.HandlerFunc(handlers.ListPermissions))).Methods("GET")

	// Company settings
	admin.Handle("/settings", middleware.RequirePermission("settings:read")(
		http.HandlerFunc(handlers.GetCompanySettings))).Methods("GET")
	admin.Handle("/settings", middleware.RequirePermission("settings:update")(
		http.HandlerFunc(handlers.UpdateCompanySettings))).Methods("PUT")
}
