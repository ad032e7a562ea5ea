package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthVendorRepository interface {
	Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
}

type AuthService struct {
	repo       AuthUserRepository
	vendorRepo AuthVendorRepository
}

func NewAuthService(repo AuthUserRepository, vendorRepo AuthVendorRepository) *AuthService {
	return &AuthService{
		repo:       repo,
		vendorRepo: vendorRepo,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SignupVendor creates the identity and its vendor profile. The profile
// starts on the default commission rate; admins adjust it later.
func (s *AuthService) SignupVendor(ctx context.Context, user domain.User, vendorName string) (domain.User, error) {
	created, err := s.Signup(ctx, user)
	if err != nil {
		return domain.User{}, err
	}

	_, err = s.vendorRepo.Create(ctx, domain.Vendor{
		UserID:         created.ID,
		Name:           vendorName,
		CommissionRate: domain.DefaultCommissionRate,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.vendorRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}
