package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interview-prep-server/internal/config"
	"interview-prep-server/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var miniRedis *miniredis.Miniredis

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(user *User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockService) Login(email, password string) (*User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) GetUserByID(id uint64) (*User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) UpdateProfile(id uint64, name string) (*User, error) {
	args := m.Called(id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) DeactivateUser(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	config.AppConfig.JWTSecret = "test-secret"

	// Initialize miniredis for testing if not already done
	if miniRedis == nil {
		var err error
		miniRedis, err = miniredis.Run()
		if err != nil {
			panic(err)
		}
	}

	// Set up Redis client connected to miniredis
	if redis.RedisClient == nil {
		redis.RedisClient = redisLib.NewClient(&redisLib.Options{
			Addr: miniRedis.Addr(),
		})
	}

	return router
}

func TestRegister_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	mockService.On("Register", mock.MatchedBy(func(user *User) bool {
		return user.Name == "John Doe" &&
			user.Email == "john@example.com" &&
			user.Password == "password123"
	})).Return(nil).Run(func(args mock.Arguments) {
		user := args.Get(0).(*User)
		user.ID = 1
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
	})

	router.POST("/register", func(c *gin.Context) {
		handler.Register(c)
	})

	payload := FormRegister{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response["user"])
	mockService.AssertExpectations(t)
}

func TestRegister_InvalidInput(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	router.POST("/register", func(c *gin.Context) {
		handler.Register(c)
	})

	payload := struct{ Name string }{Name: "John Doe"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_InvalidEmail(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	router.POST("/register", func(c *gin.Context) {
		handler.Register(c)
	})

	payload := FormRegister{
		Name:     "John Doe",
		Email:    "invalid-email",
		Password: "password123",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	router.POST("/register", func(c *gin.Context) {
		handler.Register(c)
	})

	payload := FormRegister{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "123",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	user := &User{
		ID:       1,
		Name:     "John Doe",
		Email:    "john@example.com",
		IsActive: true,
	}

	mockService.On("Login", "john@example.com", "password123").Return(user, nil)

	router.POST("/login", func(c *gin.Context) {
		handler.Login(c)
	})

	payload := FormLogin{
		Email:    "john@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response["access_token"])
	assert.NotNil(t, response["user"])

	// the issued token must be active in redis
	token := response["access_token"].(string)
	exists, err := redis.TokenExists(token)
	assert.NoError(t, err)
	assert.True(t, exists)
	mockService.AssertExpectations(t)
}

func TestLogin_InvalidInput(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	router.POST("/login", func(c *gin.Context) {
		handler.Login(c)
	})

	payload := struct{ Email string }{Email: "john@example.com"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProfile_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	user := &User{
		ID:       1,
		Name:     "John Doe",
		Email:    "john@example.com",
		IsActive: true,
	}
	mockService.On("GetUserByID", uint64(1)).Return(user, nil)

	router.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		handler.GetProfile(c)
	})

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response SafeUser
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "john@example.com", response.Email)
	mockService.AssertExpectations(t)
}

func TestUpdateProfile_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	updated := &User{
		ID:       1,
		Name:     "Johnny",
		Email:    "john@example.com",
		IsActive: true,
	}
	mockService.On("UpdateProfile", uint64(1), "Johnny").Return(updated, nil)

	router.PUT("/profile", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		handler.UpdateProfile(c)
	})

	payload := FormUpdateProfile{Name: "Johnny"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("PUT", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response SafeUser
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Johnny", response.Name)
	mockService.AssertExpectations(t)
}

func TestDeleteProfile_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(handler)

	mockService.On("DeactivateUser", uint64(1)).Return(nil)

	router.DELETE("/profile", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		c.Set("jwt_token", "some-token")
		handler.DeleteProfile(c)
	})

	req := httptest.NewRequest("DELETE", "/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}
