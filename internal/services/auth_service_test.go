package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/mocks"
)

func newAuthFixture() (*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService, domain.AuthService) {
	userRepo := mocks.NewMockUserRepository()
	passwordSvc := mocks.NewMockPasswordService()
	tokenSvc := mocks.NewMockTokenService()
	svc := NewAuthService(userRepo, passwordSvc, tokenSvc, 3600)
	return userRepo, passwordSvc, tokenSvc, svc
}

func TestRegisterRoleRules(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.RegisterInput
		wantErr error
	}{
		{
			name:    "admin without email",
			in:      domain.RegisterInput{Name: "A", Role: domain.RoleAdmin, Phone: "+15550001111", Password: "pw"},
			wantErr: domain.ErrEmailRequired,
		},
		{
			name:    "farmer without phone",
			in:      domain.RegisterInput{Name: "F", Role: domain.RoleFarmer, Email: "f@example.com", Password: "pw"},
			wantErr: domain.ErrPhoneRequired,
		},
		{
			name:    "unknown role",
			in:      domain.RegisterInput{Name: "X", Role: "superuser", Email: "x@example.com", Password: "pw"},
			wantErr: domain.ErrInvalidRole,
		},
		{
			name: "admin with email",
			in:   domain.RegisterInput{Name: "A", Role: domain.RoleAdmin, Email: "a@example.com", Password: "pw"},
		},
		{
			name: "farmer with phone",
			in:   domain.RegisterInput{Name: "F", Role: domain.RoleFarmer, Phone: "+15550002222", Password: "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, svc := newAuthFixture()
			user, err := svc.Register(context.Background(), tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if user.Role != tt.in.Role {
				t.Errorf("Role = %q, want %q", user.Role, tt.in.Role)
			}
			if user.PasswordHash == tt.in.Password {
				t.Error("password stored in plaintext")
			}
		})
	}
}

func TestRegisterDuplicateLoginKey(t *testing.T) {
	userRepo, _, _, svc := newAuthFixture()
	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return &domain.User{ID: 1, Phone: phone, Role: domain.RoleFarmer}, nil
	}

	_, err := svc.Register(context.Background(), domain.RegisterInput{
		Name: "F", Role: domain.RoleFarmer, Phone: "+15550002222", Password: "pw",
	})
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("Register() error = %v, want ErrUserAlreadyExists", err)
	}
}

func TestRegisterDuplicateCheckFailureAborts(t *testing.T) {
	userRepo, _, _, svc := newAuthFixture()
	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return nil, errors.New("connection reset")
	}
	creates := 0
	userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		creates++
		return nil
	}

	_, err := svc.Register(context.Background(), domain.RegisterInput{
		Name: "F", Role: domain.RoleFarmer, Phone: "+15550002222", Password: "pw",
	})
	if err == nil {
		t.Fatal("Register() error = nil, want failure when the duplicate check cannot run")
	}
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("Register() error = %v, must not be reported as a duplicate", err)
	}
	if creates != 0 {
		t.Errorf("repo Create calls = %d, want 0 when the duplicate check fails", creates)
	}
}

func TestRegisterKeepsSingleLoginKey(t *testing.T) {
	tests := []struct {
		name      string
		in        domain.RegisterInput
		wantEmail string
		wantPhone string
	}{
		{
			name:      "farmer drops email",
			in:        domain.RegisterInput{Name: "F", Role: domain.RoleFarmer, Phone: "+15550002222", Email: "f@example.com", Password: "pw"},
			wantPhone: "+15550002222",
		},
		{
			name:      "admin drops phone",
			in:        domain.RegisterInput{Name: "A", Role: domain.RoleAdmin, Email: "a@example.com", Phone: "+15550001111", Password: "pw"},
			wantEmail: "a@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo, _, _, svc := newAuthFixture()
			var stored *domain.User
			userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
				stored = user
				return nil
			}

			user, err := svc.Register(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if user.Email != tt.wantEmail || user.Phone != tt.wantPhone {
				t.Errorf("login keys = (%q, %q), want (%q, %q)", user.Email, user.Phone, tt.wantEmail, tt.wantPhone)
			}
			if stored == nil || stored.Email != tt.wantEmail || stored.Phone != tt.wantPhone {
				t.Error("persisted user must carry only the role's login key")
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	userRepo, _, tokenSvc, svc := newAuthFixture()
	stored := &domain.User{
		ID:           5,
		Phone:        "+15550002222",
		PasswordHash: "hashed:pw",
		Role:         domain.RoleFarmer,
	}
	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		if phone == stored.Phone {
			return stored, nil
		}
		return nil, domain.ErrUserNotFound
	}

	var gotRole string
	var gotKey string
	tokenSvc.GenerateFunc = func(userID uint, role, loginKey string) (string, error) {
		gotRole, gotKey = role, loginKey
		return "signed-token", nil
	}

	res, err := svc.Login(context.Background(), "+15550002222", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "signed-token" {
		t.Errorf("Token = %q", res.Token)
	}
	if res.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want 3600", res.ExpiresIn)
	}
	if gotRole != domain.RoleFarmer {
		t.Errorf("token role = %q, want the user's stored role", gotRole)
	}
	if gotKey != stored.Phone {
		t.Errorf("token login key = %q, want the farmer's phone", gotKey)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	userRepo, _, _, svc := newAuthFixture()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == "a@example.com" {
			return &domain.User{ID: 1, Email: email, PasswordHash: "hashed:right", Role: domain.RoleAdmin}, nil
		}
		return nil, domain.ErrUserNotFound
	}

	_, missErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, wrongErr := svc.Login(context.Background(), "a@example.com", "wrong")

	if !errors.Is(missErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown account error = %v, want ErrInvalidCredentials", missErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongErr)
	}
	if missErr.Error() != wrongErr.Error() {
		t.Error("lookup miss and password mismatch must produce the same error")
	}
}

func TestLoginUnknownAccountStillHashes(t *testing.T) {
	userRepo, passwordSvc, _, svc := newAuthFixture()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}

	verifyCalls := 0
	passwordSvc.VerifyFunc = func(hashedPassword, password string) bool {
		verifyCalls++
		return false
	}

	_, _ = svc.Login(context.Background(), "nobody@example.com", "pw")
	if verifyCalls != 1 {
		t.Errorf("Verify called %d times on lookup miss, want 1", verifyCalls)
	}
}
