package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/loftchat/loftchat-backend/internal/models"
	"gorm.io/gorm"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}

	return &models.User{
		ID:          id,
		Username:    username,
		DisplayName: "Test User",
		Avatar:      "https://example.com/avatar.jpg",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// CreateTestRoom creates a test group room with default values
func (h *TestHelper) CreateTestRoom(id uint, name string) *models.Room {
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test Room"
	}

	return &models.Room{
		ID:        id,
		Type:      models.RoomGroup,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestMessage creates a test message with default values
func (h *TestHelper) CreateTestMessage(id, roomID, memberID uint, content string) *models.Message {
	if id == 0 {
		id = 1
	}
	if roomID == 0 {
		roomID = 1
	}
	if memberID == 0 {
		memberID = 1
	}
	if content == "" {
		content = "Test message"
	}

	return &models.Message{
		ID:        id,
		RoomID:    roomID,
		MemberID:  memberID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
	os.Setenv("MAX_MESSAGE_LENGTH", "4000")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("MAX_MESSAGE_LENGTH")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// AssertNotNil checks if a value is not nil
func (h *TestHelper) AssertNotNil(value interface{}, testName string) {
	if value == nil {
		h.t.Errorf("%s: expected non-nil value", testName)
	}
}

// GetRecordNotFoundError returns the store's record-miss sentinel
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}
