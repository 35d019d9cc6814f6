package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

type stubAuthRepo struct {
	byUsername map[string]*domain.User
	nextID     int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byUsername: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *user
	r.byUsername[user.Username] = &clone
	return user, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byUsername))
	for _, u := range r.byUsername {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubAuthRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	for _, u := range r.byUsername {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newAuthServiceForTest() (*AuthService, *stubAuthRepo) {
	repo := newStubAuthRepo()
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newAuthServiceForTest()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dewi",
		Password: "rahasia123",
		FullName: "Dewi Lestari",
		Role:     "staf_ppat",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleStafPPAT {
		t.Errorf("role = %s, want staf_ppat", user.Role)
	}
	if user.PasswordHash == "rahasia123" {
		t.Error("password stored in plain text")
	}
	stored := repo.byUsername["dewi"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rahasia123")) != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Username: "dewi", FullName: "Dewi"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("missing password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Register(ctx, ports.RegisterInput{
		Username: "dewi", Password: "x", FullName: "Dewi", Role: "hakim",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown role: err = %v, want ErrInvalidCredentials", err)
	}

	// empty role is allowed and grants minimal access
	user, err := svc.Register(ctx, ports.RegisterInput{
		Username: "tamu", Password: "x", FullName: "Tamu",
	})
	if err != nil {
		t.Fatalf("Register without role: %v", err)
	}
	if user.Role != "" {
		t.Errorf("role = %q, want empty", user.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	input := ports.RegisterInput{Username: "dewi", Password: "x", FullName: "Dewi"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, input)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Username: "dewi", Password: "rahasia123", FullName: "Dewi", Role: "administrator",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(ctx, "dewi", "rahasia123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "dewi" {
		t.Errorf("username = %q", user.Username)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "dewi" {
		t.Errorf("token username claim = %v", claims["username"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Username: "dewi", Password: "rahasia123", FullName: "Dewi",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login(ctx, "dewi", "salah")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, _, err = svc.Login(ctx, "ghost", "salah")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestResolveRoleFailsClosed(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	ctx := context.Background()

	repo.byUsername["dewi"] = &domain.User{
		ID: "u1", Username: "dewi", Role: domain.RoleAdministrator,
	}

	if got := svc.ResolveRole(ctx, "dewi"); got != domain.RoleAdministrator {
		t.Errorf("ResolveRole = %q, want administrator", got)
	}
	if got := svc.ResolveRole(ctx, "ghost"); got != "" {
		t.Errorf("ResolveRole for unknown user = %q, want empty role", got)
	}
}

func TestAssignRole(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	ctx := context.Background()

	repo.byUsername["dewi"] = &domain.User{ID: "u1", Username: "dewi", Role: domain.RoleStafNotaris}

	if err := svc.AssignRole(ctx, "u1", domain.RoleAdministrator); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
	if repo.byUsername["dewi"].Role != domain.RoleAdministrator {
		t.Errorf("role = %s, want administrator", repo.byUsername["dewi"].Role)
	}

	if err := svc.AssignRole(ctx, "u1", domain.Role("hakim")); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials for unknown role", err)
	}

	// clearing the role demotes to minimal access
	if err := svc.AssignRole(ctx, "u1", ""); err != nil {
		t.Fatalf("AssignRole clear: %v", err)
	}
	if repo.byUsername["dewi"].Role != "" {
		t.Errorf("role = %q, want empty", repo.byUsername["dewi"].Role)
	}
}
