package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

type mockUserRepository struct {
	Users map[uint]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{Users: make(map[uint]*models.User)}
}

func (m *mockUserRepository) CreateUser(user *models.User) error {
	user.ID = uint(len(m.Users) + 1)
	m.Users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetUserByID(id uint) (*models.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range m.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) ListUsersByRole(role models.UserRole) ([]*models.User, error) {
	var users []*models.User
	for _, user := range m.Users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

const testJWTSecret = "test-secret"

func newTestAccountService() (AccountService, *mockUserRepository) {
	userRepo := newMockUserRepository()
	return NewAccountService(userRepo, testJWTSecret, testLogger()), userRepo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestAccountService()

	user, err := svc.Register("mari", "mari@example.com", "s3cret", models.RoleEmployee)

	assert.NoError(t, err)
	assert.NotEmpty(t, user.DocumentID)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAccountService()
	registered, err := svc.Register("mari", "mari@example.com", "s3cret", models.RoleEmployee)
	assert.NoError(t, err)

	token, user, err := svc.Login("mari@example.com", "s3cret")

	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(registered.ID), claims["sub"])
	assert.Equal(t, string(models.RoleEmployee), claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAccountService()
	_, err := svc.Register("mari", "mari@example.com", "s3cret", models.RoleEmployee)
	assert.NoError(t, err)

	token, user, err := svc.Login("mari@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAccountService()

	_, _, err := svc.Login("nobody@example.com", "s3cret")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedUser(t *testing.T) {
	svc, userRepo := newTestAccountService()
	registered, err := svc.Register("mari", "mari@example.com", "s3cret", models.RoleEmployee)
	assert.NoError(t, err)

	blocked := true
	userRepo.Users[registered.ID].Blocked = &blocked

	_, _, err = svc.Login("mari@example.com", "s3cret")

	assert.ErrorIs(t, err, ErrUserBlocked)
}
