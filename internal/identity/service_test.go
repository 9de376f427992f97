package identity_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/identity"
	"github.com/vegmart/vegmart/internal/testdb"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := identity.NewService(testdb.New(t))

	u, err := svc.Register(context.Background(), "alice", "s3cret1", "Alice", domain.RoleCustomer, true)
	require.NoError(t, err)
	assert.Equal(t, common.ENABLED, u.Status)
	assert.True(t, u.Wholesale)
	assert.NotEqual(t, "s3cret1", u.Password)

	got, err := svc.Authenticate(context.Background(), "alice", "s3cret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc := identity.NewService(testdb.New(t))

	_, err := svc.Register(context.Background(), "", "s3cret1", "", domain.RoleCustomer, false)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = svc.Register(context.Background(), "bob", "short", "", domain.RoleCustomer, false)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = svc.Register(context.Background(), "bob", "s3cret1", "", "SUPERUSER", false)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := identity.NewService(testdb.New(t))

	_, err := svc.Register(context.Background(), "alice", "s3cret1", "", domain.RoleCustomer, false)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other-pass", "", domain.RoleCustomer, false)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	db := testdb.New(t)
	svc := identity.NewService(db)

	u, err := svc.Register(context.Background(), "alice", "s3cret1", "", domain.RoleCustomer, false)
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", u.ID).Update("status", common.DISABLED).Error)

	_, err = svc.Authenticate(context.Background(), "alice", "s3cret1")
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestIssueTokenRoundTrip(t *testing.T) {
	u := &domain.User{
		ID:        common.UUIDint64(),
		Username:  "alice",
		FullName:  "Alice",
		Role:      domain.RoleSalesperson,
		Wholesale: true,
	}

	signed, err := identity.IssueToken(u, "test-secret")
	require.NoError(t, err)

	var claims identity.Claims
	_, err = jwt.ParseWithClaims(signed, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	actor := identity.ActorFromClaims(&claims)
	assert.Equal(t, u.ID, actor.ID)
	assert.Equal(t, u.Username, actor.Username)
	assert.Equal(t, u.Role, actor.Role)
	assert.True(t, actor.Wholesale)
}

func TestListUsersRoleFilter(t *testing.T) {
	svc := identity.NewService(testdb.New(t))

	for _, tc := range []struct{ name, role string }{
		{"a1", domain.RoleAdmin},
		{"s1", domain.RoleSalesperson},
		{"s2", domain.RoleSalesperson},
		{"c1", domain.RoleCustomer},
	} {
		_, err := svc.Register(context.Background(), tc.name, "s3cret1", "", tc.role, false)
		require.NoError(t, err)
	}

	rows, total, err := svc.ListUsers(context.Background(), domain.RoleSalesperson, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	_, total, err = svc.ListUsers(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
