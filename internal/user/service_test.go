package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[string]*User // by ID
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now().UTC()
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeRepo) Deactivate(ctx context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

// fakeHasher marks hashes with a prefix instead of running bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeHasher{}), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:       "  Jamie@Example.COM ",
		Password:    "hunter2hunter2",
		DisplayName: "Jamie",
		Role:        RoleCustomer,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	// Email is normalized before storage.
	assert.Equal(t, "jamie@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	// Only the hash is stored.
	assert.Equal(t, "hashed:hunter2hunter2", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email: " ", Password: "hunter2hunter2", Role: RoleCustomer,
	})
	assert.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Email: "short@example.com", Password: "short", Role: RoleCustomer,
	})
	assert.Error(t, err)

	// Admin accounts cannot be self-registered.
	_, err = svc.Register(ctx, RegisterRequest{
		Email: "boss@example.com", Password: "hunter2hunter2", Role: RoleAdmin,
	})
	assert.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Email: "odd@example.com", Password: "hunter2hunter2", Role: Role("superuser"),
	})
	assert.Error(t, err)

	// Business role is allowed.
	_, err = svc.Register(ctx, RegisterRequest{
		Email: "shop@example.com", Password: "hunter2hunter2", Role: RoleBusiness,
	})
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email: "jamie@example.com", Password: "hunter2hunter2", Role: RoleCustomer,
	})
	require.NoError(t, err)

	// Same address with different casing is still a duplicate.
	_, err = svc.Register(ctx, RegisterRequest{
		Email: "JAMIE@example.com", Password: "hunter2hunter2", Role: RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email: "jamie@example.com", Password: "hunter2hunter2", Role: RoleCustomer,
	})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "jamie@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	// Last login is recorded.
	stored := repo.users[registered.ID]
	assert.NotNil(t, stored.LastLoginAt)

	_, err = svc.Login(ctx, "jamie@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email: "jamie@example.com", Password: "hunter2hunter2", Role: RoleCustomer,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, u.ID))

	_, err = svc.Login(ctx, "jamie@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email: "jamie@example.com", Password: "hunter2hunter2", Role: RoleCustomer,
	})
	require.NoError(t, err)

	name := "  Jamie L  "
	phone := ""
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{
		DisplayName: &name,
		Phone:       &phone,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.DisplayName)
	assert.Equal(t, "Jamie L", *updated.DisplayName)
	// Empty strings clear the field.
	assert.Nil(t, updated.Phone)
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"customer", "business", "admin"} {
		r, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, Role(raw), r)
	}

	_, err := ParseRole("owner")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}
