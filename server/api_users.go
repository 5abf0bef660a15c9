package orderserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userapp "github.com/Apurer/go-gin-order-api/internal/domains/users/application"
	userdomain "github.com/Apurer/go-gin-order-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-order-api/internal/domains/users/ports"
)

// UsersAPI wires HTTP transport with the users bounded context service.
type UsersAPI struct {
	service userports.Service
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// RegisterRequest is the POST /api/users payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /api/users/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the transport-layer user representation.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

func fromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: user.IsAdmin}
}

// Post /api/users
// Register a new account
func (api *UsersAPI) CreateUser(c *gin.Context) {
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainUser(user))
}

// Post /api/users/login
// Authenticate and receive a bearer token
func (api *UsersAPI) LoginUser(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, token, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	response := fromDomainUser(user)
	response.Token = token
	c.JSON(http.StatusOK, response)
}

// Get /api/users/profile
// Fetch the authenticated caller's own account
func (api *UsersAPI) GetUserProfile(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		respondProblem(c, unauthenticated())
		return
	}
	user, err := api.service.GetProfile(c.Request.Context(), caller.ID)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainUser(user))
}

// Post /api/users/logout
// Drop the caller's server-side session
func (api *UsersAPI) LogoutUser(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		respondProblem(c, unauthenticated())
		return
	}
	api.service.Logout(c.Request.Context(), caller.ID)
	c.Status(http.StatusOK)
}

func respondUserServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, userports.ErrEmailTaken):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, userapp.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, userapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
