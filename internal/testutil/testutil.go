package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/auth"
	"github.com/mvera/storedash/internal/database/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.StaffMembership{},
		&models.Category{},
		&models.Product{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("warning: failed to get sql.DB: %v", err)
		return
	}
	sqlDB.Close()
}

// CreateTestUser creates a test user with the given role
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Base: models.Base{
			ID: uuid.New(),
		},
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
		IsActive:     true,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestStore creates an active store owned by the given user
func CreateTestStore(t *testing.T, db *gorm.DB, owner *models.User) *models.Store {
	t.Helper()

	store := &models.Store{
		Base: models.Base{
			ID: uuid.New(),
		},
		Name:     "Test Store",
		Slug:     "test-store-" + uuid.New().String()[:8],
		Status:   models.StoreStatusActive,
		IsActive: true,
		OwnerID:  owner.ID,
	}

	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	return store
}

// CreateTestStaff links a user to a store with the given permissions
func CreateTestStaff(t *testing.T, db *gorm.DB, store *models.Store, user *models.User, permissions ...string) *models.StaffMembership {
	t.Helper()

	membership := &models.StaffMembership{
		Base: models.Base{
			ID: uuid.New(),
		},
		StoreID:     store.ID,
		UserID:      user.ID,
		Permissions: models.StringList(permissions),
		IsActive:    true,
	}

	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create test staff membership: %v", err)
	}

	return membership
}

// CreateTestCategory creates a category in the given store
func CreateTestCategory(t *testing.T, db *gorm.DB, storeID uuid.UUID, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()

	category := &models.Category{
		Base: models.Base{
			ID: uuid.New(),
		},
		StoreID:  storeID,
		Name:     name,
		Slug:     "cat-" + uuid.New().String()[:8],
		ParentID: parentID,
		IsActive: true,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

// CreateTestProduct creates a product in the given store
func CreateTestProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, categoryID *uuid.UUID, name string) *models.Product {
	t.Helper()

	product := &models.Product{
		Base: models.Base{
			ID: uuid.New(),
		},
		StoreID:    storeID,
		CategoryID: categoryID,
		Name:       name,
		Slug:       "prod-" + uuid.New().String()[:8],
		PriceCents: 1999,
		IsActive:   true,
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}

	return product
}

// NewTestLogger returns a logger that discards all output
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 15*time.Minute, 24*time.Hour)
}

// GenerateTestToken generates a valid access token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestSetup holds the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Owner      *models.User
	Store      *models.Store
	Token      string
}

// NewTestContext creates a complete test setup with DB, owner, store, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	owner := CreateTestUser(t, db, models.RoleStoreOwner)
	store := CreateTestStore(t, db, owner)
	token := GenerateTestToken(t, jwtService, owner)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Owner:      owner,
		Store:      store,
		Token:      token,
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
