package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pulse-hq/pulse/internal/config"
	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Auth flow errors. Handlers map these onto the HTTP statuses and bodies the
// cookie-based clients expect.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrMissingToken       = errors.New("no refresh token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrSessionNotFound    = errors.New("session not found")
)

type AuthService struct {
	db          *gorm.DB
	ldapService *LDAPService
	jwtConfig   *config.JWTConfig
	ldapEnabled bool
}

func NewAuthService(db *gorm.DB, ldapCfg *config.LDAPConfig, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:          db,
		ldapService: NewLDAPService(ldapCfg),
		jwtConfig:   jwtCfg,
		ldapEnabled: ldapCfg.Enabled,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type"` // local, ldap
}

type LoginResult struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresIn time.Duration
	RefreshExpires  time.Duration
	User            *models.User
}

type RefreshResult struct {
	AccessToken     string
	RefreshToken    string // empty unless rotation produced a new one
	AccessExpiresIn time.Duration
	RefreshExpires  time.Duration
}

type StatusResult struct {
	Authenticated bool  `json:"authenticated"`
	UserID        *uint `json:"user_id,omitempty"`
}

// Login validates credentials, mints an access/refresh token pair and records
// the login session. The OutstandingToken and LoginSession rows are written in
// one transaction: a session with no matching token record is never
// observable.
func (s *AuthService) Login(req *LoginRequest, clientIP, userAgent string) (*LoginResult, error) {
	var user *models.User
	var err error

	if req.AuthType == "" {
		req.AuthType = "local"
	}

	switch req.AuthType {
	case "local":
		user, err = s.localAuth(req.Username, req.Password)
	case "ldap":
		user, err = s.ldapAuth(req.Username, req.Password)
	default:
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	refreshTTL := s.jwtConfig.RefreshTTL()
	accessTTL := s.jwtConfig.AccessTTL()

	refreshToken, jti, err := utils.GenerateRefreshToken(user.ID, user.Username, user.Role, refreshTTL)
	if err != nil {
		return nil, err
	}
	accessToken, _, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role, accessTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	outstanding := models.OutstandingToken{
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: now.Add(refreshTTL),
	}
	session := models.LoginSession{
		UserID:    user.ID,
		JTI:       jti,
		UserAgent: userAgent,
		IPAddress: clientIP,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&outstanding).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	}); err != nil {
		return nil, err
	}

	user.LastLogin = &now
	s.db.Model(user).Update("last_login", now)

	return &LoginResult{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresIn: accessTTL,
		RefreshExpires:  refreshTTL,
		User:            user,
	}, nil
}

// Status reports whether the given access token authenticates a caller. It
// never returns an error for bad tokens; an undecodable or revoked token is
// simply unauthenticated.
func (s *AuthService) Status(accessToken string) *StatusResult {
	if accessToken == "" {
		return &StatusResult{Authenticated: false}
	}

	claims, err := utils.ParseToken(accessToken)
	if err != nil || claims.TokenType != utils.TokenTypeAccess {
		return &StatusResult{Authenticated: false}
	}

	if s.IsBlacklisted(claims.JTI()) {
		return &StatusResult{Authenticated: false}
	}

	uid := claims.UserID
	return &StatusResult{Authenticated: true, UserID: &uid}
}

// Refresh exchanges a valid, non-revoked refresh token for a new access token
// and, when rotation is enabled, a new refresh token with a fresh jti (the old
// jti is blacklisted in the same transaction).
//
// The revocation check is authoritative: a blacklisted jti is rejected as
// revoked even when the token has already expired.
func (s *AuthService) Refresh(refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		// Revocation dominates expiry: an expired token whose jti is already
		// blacklisted reports as revoked, not merely invalid.
		if errors.Is(err, jwt.ErrTokenExpired) {
			if expired, perr := parseExpiredClaims(refreshToken); perr == nil && s.IsBlacklisted(expired.JTI()) {
				return nil, ErrTokenRevoked
			}
		}
		return nil, ErrInvalidToken
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	if s.IsBlacklisted(claims.JTI()) {
		return nil, ErrTokenRevoked
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	accessTTL := s.jwtConfig.AccessTTL()
	refreshTTL := s.jwtConfig.RefreshTTL()

	accessToken, _, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role, accessTTL)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{
		AccessToken:     accessToken,
		AccessExpiresIn: accessTTL,
	}

	if s.jwtConfig.RotateRefresh {
		newRefresh, newJTI, err := utils.GenerateRefreshToken(user.ID, user.Username, user.Role, refreshTTL)
		if err != nil {
			return nil, err
		}
		if err := s.db.Transaction(func(tx *gorm.DB) error {
			outstanding := models.OutstandingToken{
				UserID:    user.ID,
				JTI:       newJTI,
				ExpiresAt: time.Now().Add(refreshTTL),
			}
			if err := tx.Create(&outstanding).Error; err != nil {
				return err
			}
			return blacklistJTI(tx, user.ID, claims.JTI(), claims.ExpiresAt.Time)
		}); err != nil {
			return nil, err
		}
		result.RefreshToken = newRefresh
		result.RefreshExpires = refreshTTL
	}

	return result, nil
}

// Logout blacklists the refresh token's jti. Revoking an already-revoked
// token is a no-op success; a structurally invalid token is an error.
func (s *AuthService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return ErrMissingToken
	}

	claims, err := utils.ParseToken(refreshToken)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return ErrInvalidToken
	}

	return blacklistJTI(s.db, claims.UserID, claims.JTI(), claims.ExpiresAt.Time)
}

// ListSessions returns the caller's login sessions newest first, each with the
// derived is_revoked flag.
func (s *AuthService) ListSessions(userID uint) ([]models.LoginSession, error) {
	var sessions []models.LoginSession
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	var revokedJTIs []string
	if err := s.db.Model(&models.BlacklistedToken{}).
		Joins("JOIN outstanding_tokens ON outstanding_tokens.id = blacklisted_tokens.token_id").
		Where("outstanding_tokens.user_id = ?", userID).
		Pluck("outstanding_tokens.jti", &revokedJTIs).Error; err != nil {
		return nil, err
	}

	revoked := make(map[string]bool, len(revokedJTIs))
	for _, jti := range revokedJTIs {
		revoked[jti] = true
	}
	for i := range sessions {
		sessions[i].IsRevoked = revoked[sessions[i].JTI]
	}
	return sessions, nil
}

// RevokeSession blacklists the refresh token behind one of the caller's
// sessions. A jti not belonging to the caller is reported as not found, never
// as someone else's. Revoking an already-revoked session succeeds, as does
// revoking a session whose token record was flushed: either way the end state
// "token cannot authenticate" already holds.
func (s *AuthService) RevokeSession(userID uint, jti string) error {
	var session models.LoginSession
	if err := s.db.Where("user_id = ? AND jti = ?", userID, jti).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	var outstanding models.OutstandingToken
	if err := s.db.Where("jti = ?", jti).First(&outstanding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Token record already flushed; nothing left to revoke.
			return nil
		}
		return err
	}

	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlacklistedToken{TokenID: outstanding.ID}).Error
}

// IsBlacklisted reports whether a jti appears in the revocation ledger.
func (s *AuthService) IsBlacklisted(jti string) bool {
	var count int64
	s.db.Model(&models.BlacklistedToken{}).
		Joins("JOIN outstanding_tokens ON outstanding_tokens.id = blacklisted_tokens.token_id").
		Where("outstanding_tokens.jti = ?", jti).
		Count(&count)
	return count > 0
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword verifies the old password and stores the new hash. LDAP
// accounts have no local password to change.
func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}
	if user.AuthType != "local" {
		return errors.New("password is managed by the directory")
	}
	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return errors.New("old password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password", hash).Error
}

// CreateAdminIfNotExists seeds the default admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Password: hash,
		Role:     "admin",
		AuthType: "local",
		IsActive: true,
	}
	return s.db.Create(&admin).Error
}

// blacklistJTI inserts a revocation ledger entry for the given jti, creating
// the OutstandingToken row first if one was never recorded. The unique index
// on token_id plus the conflict clause makes concurrent duplicate revocations
// idempotent.
func blacklistJTI(db *gorm.DB, userID uint, jti string, expiresAt time.Time) error {
	var outstanding models.OutstandingToken
	err := db.Where("jti = ?", jti).First(&outstanding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		outstanding = models.OutstandingToken{
			UserID:    userID,
			JTI:       jti,
			ExpiresAt: expiresAt,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&outstanding).Error; err != nil {
			return err
		}
		if outstanding.ID == 0 {
			// Lost the race to a concurrent insert; reload.
			if err := db.Where("jti = ?", jti).First(&outstanding).Error; err != nil {
				return err
			}
		}
	} else if err != nil {
		return err
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlacklistedToken{TokenID: outstanding.ID}).Error
}

// parseExpiredClaims extracts claims from an expired token without failing
// the expiry check. The signature is still verified.
func parseExpiredClaims(tokenString string) (*utils.Claims, error) {
	claims, err := utils.ParseToken(tokenString)
	if err == nil {
		return claims, nil
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, &utils.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return utils.JWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	return token.Claims.(*utils.Claims), nil
}

func (s *AuthService) localAuth(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? AND auth_type = ?", username, "local").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthService) ldapAuth(username, password string) (*models.User, error) {
	ldapUser, err := s.ldapService.Authenticate(username, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err = s.db.Where("username = ? AND auth_type = ?", ldapUser.Username, "ldap").First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username:  ldapUser.Username,
			Email:     ldapUser.Email,
			FirstName: ldapUser.GivenName,
			LastName:  ldapUser.Surname,
			Role:      "user",
			AuthType:  "ldap",
			IsActive:  true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	// Keep directory attributes fresh on every login
	user.Email = ldapUser.Email
	user.FirstName = ldapUser.GivenName
	user.LastName = ldapUser.Surname
	s.db.Save(&user)

	return &user, nil
}
