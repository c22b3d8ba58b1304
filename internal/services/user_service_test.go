package services

import (
	"net/http"
	"parts_market/internal/models"
	"parts_market/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db))
}

func TestCreateUserAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	user := &models.User{
		Username:    "workshop_one",
		Role:        models.RoleWorkshop,
		PhoneNumber: "01712345678",
	}
	require.NoError(t, svc.CreateUser(user, "s3cret"))
	assert.NotEmpty(t, user.APIToken)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	logged, err := svc.Login("workshop_one", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Equal(t, user.APIToken, logged.APIToken)
}

func TestLogin_BadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	user := &models.User{Username: "vendor_one", Role: models.RoleVendor}
	require.NoError(t, svc.CreateUser(user, "s3cret"))

	_, err := svc.Login("vendor_one", "wrong")
	requireStatusCode(t, err, http.StatusUnauthorized)

	_, err = svc.Login("nobody", "s3cret")
	requireStatusCode(t, err, http.StatusUnauthorized)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	err := svc.CreateUser(&models.User{Username: "x", Role: "MANAGER"}, "pw")
	requireStatusCode(t, err, http.StatusBadRequest)
}

func TestGetByAPIToken(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	user := &models.User{Username: "vendor_one", Role: models.RoleVendor}
	require.NoError(t, svc.CreateUser(user, "s3cret"))

	found, err := svc.GetByAPIToken(user.APIToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.GetByAPIToken("not-a-token")
	requireStatusCode(t, err, http.StatusUnauthorized)
}
