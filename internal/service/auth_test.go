package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
	"github.com/voyago/tour-booking-api/internal/service"
)

type fakeUserRepository struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:  make(map[uint]domain.User),
		nextID: 1,
	}
}

func (r *fakeUserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

type fakeAuthVendorRepository struct {
	created []domain.Vendor
}

func (r *fakeAuthVendorRepository) Create(_ context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	vendor.ID = uint(len(r.created) + 1)
	r.created = append(r.created, vendor)
	return vendor, nil
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := service.NewAuthService(repo, &fakeAuthVendorRepository{})

		created, err := svc.Signup(ctx, domain.User{Email: "a@b.com", Password: "secret123", Role: "traveler"})

		require.NoError(t, err)
		assert.NotEqual(t, "secret123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := service.NewAuthService(repo, &fakeAuthVendorRepository{})

		_, err := svc.Signup(ctx, domain.User{Email: "a@b.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, domain.User{Email: "a@b.com", Password: "other1234"})

		assert.ErrorIs(t, err, service.ErrUserEmailExists)
	})
}

func TestAuthService_SignupVendor(t *testing.T) {
	ctx := context.Background()

	repo := newFakeUserRepository()
	vendorRepo := &fakeAuthVendorRepository{}
	svc := service.NewAuthService(repo, vendorRepo)

	created, err := svc.SignupVendor(ctx, domain.User{Email: "v@b.com", Password: "secret123", Role: "vendor"}, "Acme Tours")

	require.NoError(t, err)
	require.Len(t, vendorRepo.created, 1)
	assert.Equal(t, created.ID, vendorRepo.created[0].UserID)
	assert.Equal(t, "Acme Tours", vendorRepo.created[0].Name)
	assert.Equal(t, domain.DefaultCommissionRate, vendorRepo.created[0].CommissionRate)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	repo := newFakeUserRepository()
	svc := service.NewAuthService(repo, &fakeAuthVendorRepository{})

	_, err := svc.Signup(ctx, domain.User{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "a@b.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "nope12345")

		assert.ErrorIs(t, err, service.ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "missing@b.com", "secret123")

		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestVendorService_SetCommissionRate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the rate", func(t *testing.T) {
		svc := service.NewVendorService(newFakeVendorRepository(domain.Vendor{ID: 1, CommissionRate: 15}))

		vendor, err := svc.SetCommissionRate(ctx, 1, 22.5)

		require.NoError(t, err)
		assert.Equal(t, 22.5, vendor.CommissionRate)
	})

	t.Run("rate outside 0..100", func(t *testing.T) {
		svc := service.NewVendorService(newFakeVendorRepository(domain.Vendor{ID: 1}))

		_, err := svc.SetCommissionRate(ctx, 1, -1)
		assert.ErrorIs(t, err, service.ErrInvalidCommissionRate)

		_, err = svc.SetCommissionRate(ctx, 1, 101)
		assert.ErrorIs(t, err, service.ErrInvalidCommissionRate)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		svc := service.NewVendorService(newFakeVendorRepository())

		_, err := svc.SetCommissionRate(ctx, 999, 20)

		assert.ErrorIs(t, err, service.ErrVendorNotFound)
	})
}
