package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return ErrDuplicateEmail
	}
	copied := *u
	m.byID[u.ID] = &copied
	m.byEmail[u.Email] = &copied
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := NewService(newMemoryRepo())

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "  Reader@Example.COM ",
		DisplayName: " Avid Reader ",
	})
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, "Avid Reader", user.DisplayName)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "   "})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@example.com"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "A@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetByEmail_Normalizes(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Register(context.Background(), RegisterRequest{Email: "b@example.com"})
	require.NoError(t, err)

	found, err := svc.GetByEmail(context.Background(), " B@EXAMPLE.COM ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}
