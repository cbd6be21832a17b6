package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	stored := *user
	stored.ID = r.nextID
	r.nextID++
	r.users[user.Username] = &stored
	out := stored
	return &out, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			out := *user
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	user, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "operator1", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Password != "" {
		t.Error("password hash leaked in register response")
	}

	resp, err := svc.Login(ctx, domain.LoginUserDTO{Username: "operator1", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}

	_, claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims["username"] != "operator1" || claims["role"] != "operator" {
		t.Errorf("claims = %v, want operator1/operator", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	if _, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "operator1", Password: "hunter22"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Login(ctx, domain.LoginUserDTO{Username: "operator1", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login(ctx, domain.LoginUserDTO{Username: "nobody", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	if _, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "operator1", Password: "hunter22"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "operator1", Password: "other66"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	issuer := NewAuthService(users, "secret-a", time.Hour)
	verifier := NewAuthService(users, "secret-b", time.Hour)

	if _, err := issuer.Register(ctx, domain.RegisterUserDTO{Username: "operator1", Password: "hunter22"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	resp, err := issuer.Login(ctx, domain.LoginUserDTO{Username: "operator1", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, _, err := verifier.ValidateToken(resp.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
