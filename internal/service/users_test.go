package service

import (
	"context"
	"testing"

	"yatube/internal/models"
	"yatube/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	e := setupEnv(t)
	svc := NewUserService(e.users)
	ctx := context.Background()

	user, fieldErrs, err := svc.Register(ctx, validation.SignupInput{
		FirstName: "Leo",
		LastName:  "Tolstoy",
		Username:  " leo ",
		Password:  "war-and-peace",
		Password2: "war-and-peace",
	})
	require.NoError(t, err)
	assert.Nil(t, fieldErrs)
	assert.Equal(t, "leo", user.Username)
	assert.NotEqual(t, "war-and-peace", user.Password)

	got, err := svc.Authenticate(ctx, "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "leo", "wrong-password")
	assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))

	_, err = svc.Authenticate(ctx, "nobody", "war-and-peace")
	assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
}

func TestUserService_RegisterErrors(t *testing.T) {
	e := setupEnv(t)
	svc := NewUserService(e.users)
	ctx := context.Background()

	_, fieldErrs, err := svc.Register(ctx, validation.SignupInput{Username: "ab", Password: "x"})
	assert.True(t, models.IsValidation(err))
	assert.Contains(t, fieldErrs, "username")
	assert.Contains(t, fieldErrs, "password")

	in := validation.SignupInput{Username: "leo", Password: "war-and-peace", Password2: "war-and-peace"}
	_, _, err = svc.Register(ctx, in)
	require.NoError(t, err)

	_, fieldErrs, err = svc.Register(ctx, in)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, []string{"A user with that username already exists."}, fieldErrs["username"])
}
