package service

import (
	"testing"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (UserService, FormService, repository.UserRepository, *model.User) {
	t.Helper()
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	forms := repository.NewFormRepository(db)

	owner := &model.User{Email: "ada@example.com", FullName: "Ada"}
	require.NoError(t, users.Create(owner))

	return NewUserService(users, forms), NewFormService(forms), users, owner
}

func TestUserServiceProfile(t *testing.T) {
	svc, _, _, owner := newUserFixture(t)

	got, err := svc.GetProfile(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)

	updated, err := svc.UpdateProfile(owner.ID, dto.UpdateProfileRequest{FullName: "Ada L."})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.FullName)

	// Empty fields leave the stored values alone.
	updated, err = svc.UpdateProfile(owner.ID, dto.UpdateProfileRequest{AvatarURL: "https://x/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.FullName)
	assert.Equal(t, "https://x/a.png", updated.AvatarURL)
}

func TestUserServiceSettingsDefaults(t *testing.T) {
	svc, _, _, owner := newUserFixture(t)

	got, err := svc.GetSettings(owner.ID)
	require.NoError(t, err)
	assert.True(t, got.Notifications.ResponseEmail, "notifications default to on")
	assert.Equal(t, "en", got.Language)

	var settings dto.UserSettings
	settings.Notifications.ResponseEmail = false
	settings.Language = "vi"
	_, err = svc.UpdateSettings(owner.ID, settings)
	require.NoError(t, err)

	got, err = svc.GetSettings(owner.ID)
	require.NoError(t, err)
	assert.False(t, got.Notifications.ResponseEmail)
	assert.Equal(t, "vi", got.Language)
}

func TestUserServiceDeactivate(t *testing.T) {
	svc, _, users, owner := newUserFixture(t)

	require.NoError(t, svc.Deactivate(owner.ID))
	got, err := users.FindByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusDeactivated, got.Status)
}

func TestUserServiceDeleteAccountCascades(t *testing.T) {
	svc, forms, users, owner := newUserFixture(t)

	created, err := forms.CreateForm(owner.ID, saveRequest("Doomed"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(owner.ID))

	_, err = users.FindByID(owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = forms.GetForm(owner.ID, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
