package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
	"shopbase/internal/repository"
	"shopbase/pkg/config"
	"shopbase/pkg/jwtutil"
	"shopbase/pkg/logger"
)

// subdomainPattern constrains subdomains to a DNS label: lowercase
// alphanumerics and inner hyphens, at most 63 characters.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// RegisterRequest carries everything needed to provision a shop and its
// first administrator.
type RegisterRequest struct {
	ShopName     string `json:"shop_name"`
	Subdomain    string `json:"subdomain"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ContactPhone string `json:"contact_phone"`
}

// RegisterResult is returned after successful provisioning. The token already
// carries the tenant id, so the first authenticated request resolves through
// the high-trust path without a subdomain signal.
type RegisterResult struct {
	Tenant   *model.Tenant `json:"tenant"`
	Token    string        `json:"token"`
	LoginURL string        `json:"login_url"`
}

// LoginRequest is a staff login. Username may be the compound
// "subdomain:username" form or a plain username.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult carries the issued token and the resolved account.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
}

// AuthService handles shop registration and staff authentication. Both are
// tenant-agnostic entry points: registration creates the tenant, login
// derives it from the credential itself.
type AuthService struct {
	store      repository.Store
	jwtUtil    *jwtutil.JWTUtil
	tenantConf *config.TenantConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(store repository.Store, jwtUtil *jwtutil.JWTUtil, tenantConf *config.TenantConfig) *AuthService {
	return &AuthService{store: store, jwtUtil: jwtUtil, tenantConf: tenantConf}
}

// Register provisions a tenant plus its first administrative account in one
// transaction. Shop name, subdomain, username and email are each checked for
// uniqueness up front.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	log := logger.FromContext(ctx)

	req.ShopName = strings.TrimSpace(req.ShopName)
	req.Subdomain = strings.ToLower(strings.TrimSpace(req.Subdomain))
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.ShopName == "" {
		return nil, apperr.NewInvalidRequest("shop name is required")
	}
	if !subdomainPattern.MatchString(req.Subdomain) {
		return nil, apperr.NewInvalidRequest("subdomain %q is not a valid DNS label", req.Subdomain)
	}
	if req.Username == "" {
		return nil, apperr.NewInvalidRequest("username is required")
	}
	if len(req.Password) < 6 {
		return nil, apperr.NewInvalidRequest("password must be at least 6 characters")
	}
	if req.Email == "" {
		return nil, apperr.NewInvalidRequest("email is required")
	}

	if taken, err := s.store.Tenants().ExistsByName(ctx, req.ShopName); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.NewConflict("shop name %q is already taken", req.ShopName)
	}
	if taken, err := s.store.Tenants().ExistsBySubdomain(ctx, req.Subdomain); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.NewConflict("subdomain %q is already taken", req.Subdomain)
	}
	if taken, err := s.store.TenantUsers().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.NewConflict("username %q is already taken", req.Username)
	}
	if taken, err := s.store.TenantUsers().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.NewConflict("email %q is already registered", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	var tenant *model.Tenant
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		tenant = &model.Tenant{
			Name:         req.ShopName,
			Subdomain:    req.Subdomain,
			Active:       true,
			ContactPhone: req.ContactPhone,
			ContactEmail: req.Email,
		}
		if err := tx.Tenants().Create(ctx, tenant); err != nil {
			return err
		}
		admin := &model.TenantUser{
			TenantID:     tenant.ID,
			Username:     req.Username,
			PasswordHash: string(hash),
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Role:         "ROLE_ADMIN",
			Active:       true,
		}
		return tx.TenantUsers().Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	fullUsername := req.Subdomain + s.tenantConf.UsernameSeparator + req.Username
	token, err := s.jwtUtil.GenerateToken(req.Username, fullUsername, &tenant.ID, "ROLE_ADMIN")
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	log.Info("Tenant registered",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("subdomain", req.Subdomain),
		zap.String("username", req.Username))
	return &RegisterResult{
		Tenant:   tenant,
		Token:    token,
		LoginURL: fmt.Sprintf("https://%s.%s", req.Subdomain, s.tenantConf.RootDomain),
	}, nil
}

// Login authenticates a staff account. A compound "subdomain:username" login
// is resolved through the named shop; a plain username falls back to a global
// lookup. A deactivated tenant refuses login with ErrTenantInactive, a
// deactivated account with ErrUserDisabled.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperr.ErrUnauthorized
	}

	var account *model.TenantUser
	var subdomain string
	if sub, local, ok := strings.Cut(username, s.tenantConf.UsernameSeparator); ok {
		subdomain = strings.ToLower(sub)
		tenant, err := s.store.Tenants().FindBySubdomain(ctx, subdomain)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.ErrUnauthorized
			}
			return nil, err
		}
		if !tenant.Active {
			return nil, apperr.ErrTenantInactive
		}
		account, err = s.store.TenantUsers().FindByTenantAndUsername(ctx, tenant.ID, local)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.ErrUnauthorized
			}
			return nil, err
		}
	} else {
		var err error
		account, err = s.store.TenantUsers().FindByUsername(ctx, username)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.ErrUnauthorized
			}
			return nil, err
		}
		tenant, err := s.store.Tenants().FindByID(ctx, account.TenantID)
		if err != nil {
			return nil, err
		}
		if !tenant.Active {
			return nil, apperr.ErrTenantInactive
		}
		subdomain = tenant.Subdomain
	}

	if !account.Active {
		return nil, apperr.ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Login failed, wrong password", zap.String("username", account.Username))
		return nil, apperr.ErrUnauthorized
	}

	fullUsername := subdomain + s.tenantConf.UsernameSeparator + account.Username
	token, err := s.jwtUtil.GenerateToken(account.Username, fullUsername, &account.TenantID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	log.Info("Login succeeded",
		zap.Uint("tenant_id", account.TenantID),
		zap.String("username", account.Username))
	return &LoginResult{
		Token:    token,
		Username: account.Username,
		TenantID: account.TenantID,
		Role:     account.Role,
	}, nil
}
