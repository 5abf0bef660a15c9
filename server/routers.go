package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Access says which guard protects a route.
type Access int

const (
	// AccessPublic routes carry no token requirement.
	AccessPublic Access = iota
	// AccessAuthenticated routes require a valid bearer token.
	AccessAuthenticated
	// AccessAdmin routes additionally require the admin claim.
	AccessAdmin
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Access      Access
	HandlerFunc gin.HandlerFunc
}

// Routes is a map of defined API endpoints.
type Routes map[string][]Route

// ApiHandleFunctions holds the handler implementations for every API group.
type ApiHandleFunctions struct {
	OrdersAPI OrdersAPI
	UsersAPI  UsersAPI
}

// NewRouter returns a new router with a default gin engine.
func NewRouter(handleFunctions ApiHandleFunctions, guard *AuthGuard) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, guard)
}

// NewRouterWithGinEngine adds all API routes to the given gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, guard *AuthGuard) *gin.Engine {
	for _, routes := range getRoutes(handleFunctions) {
		for _, route := range routes {
			if route.HandlerFunc == nil {
				route.HandlerFunc = defaultHandleFunc
			}
			handlers := guardedHandlers(guard, route)
			switch route.Method {
			case http.MethodGet:
				router.GET(route.Pattern, handlers...)
			case http.MethodPost:
				router.POST(route.Pattern, handlers...)
			case http.MethodPut:
				router.PUT(route.Pattern, handlers...)
			case http.MethodPatch:
				router.PATCH(route.Pattern, handlers...)
			case http.MethodDelete:
				router.DELETE(route.Pattern, handlers...)
			}
		}
	}

	return router
}

func guardedHandlers(guard *AuthGuard, route Route) []gin.HandlerFunc {
	if guard == nil || route.Access == AccessPublic {
		return []gin.HandlerFunc{route.HandlerFunc}
	}
	handlers := []gin.HandlerFunc{guard.Authenticate()}
	if route.Access == AccessAdmin {
		handlers = append(handlers, guard.RequireAdmin())
	}
	return append(handlers, route.HandlerFunc)
}

// Default handler for non-implemented routes.
func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		"OrdersAPI": {
			{
				Name:        "CreateOrder",
				Method:      http.MethodPost,
				Pattern:     "/api/orders",
				Access:      AccessAuthenticated,
				HandlerFunc: handleFunctions.OrdersAPI.CreateOrder,
			},
			{
				Name:        "GetOrders",
				Method:      http.MethodGet,
				Pattern:     "/api/orders",
				Access:      AccessAdmin,
				HandlerFunc: handleFunctions.OrdersAPI.GetOrders,
			},
			{
				Name:        "GetMyOrders",
				Method:      http.MethodGet,
				Pattern:     "/api/orders/myorders",
				Access:      AccessAuthenticated,
				HandlerFunc: handleFunctions.OrdersAPI.GetMyOrders,
			},
			{
				Name:        "GetOrderById",
				Method:      http.MethodGet,
				Pattern:     "/api/orders/:id",
				Access:      AccessAuthenticated,
				HandlerFunc: handleFunctions.OrdersAPI.GetOrderById,
			},
			{
				Name:        "UpdateOrderToPaid",
				Method:      http.MethodPut,
				Pattern:     "/api/orders/:id/pay",
				Access:      AccessAuthenticated,
				HandlerFunc: handleFunctions.OrdersAPI.UpdateOrderToPaid,
			},
			{
				Name:        "UpdateOrderToDelivered",
				Method:      http.MethodPut,
				Pattern:     "/api/orders/:id/deliver",
				Access:      AccessAdmin,
				HandlerFunc: handleFunctions.OrdersAPI.UpdateOrderToDelivered,
			},
		},
		"UsersAPI": {
			{
				Name:        "CreateUser",
				Method:      http.MethodPost,
				Pattern:     "/api/users",
				Access:      AccessPublic,
				HandlerFunc: handleFunctions.UsersAPI.CreateUser,
			},
			{
				Name:        "LoginUser",
				Method:      http.MethodPost,
				Pattern:     "/api/users/login",
				Access:      AccessPublic,
				HandlerFunc: handleFunctions.UsersAPI.LoginUser,
			},
			{
				Name:        "LogoutUser",
				Method:      http.MethodPost,
				Pattern:     "/api/users/logout",
				Access:      AccessAuthenticated,
				HandlerFunc: handleFunctions.UsersAPI.LogoutUser,
			},
			{
				Name:        "GetUserProfile",
				Method:      http.MethodGet,
				Pattern:     "/api/users/profile",
				Access:      AccessAuthenticated,
				HandlerFunc: handleFunctions.UsersAPI.GetUserProfile,
			},
		},
	}
}
