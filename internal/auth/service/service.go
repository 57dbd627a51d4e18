// Package service implements the shared-secret admin gate.
//
// There are no user accounts: one password guards the whole admin dashboard
// and a signed-value-free HttpOnly cookie marks a verified browser.
package service

import (
	"crypto/subtle"

	"meteory_backend/platform/apperr"
	"meteory_backend/platform/config"

	"golang.org/x/crypto/bcrypt"
)

// Service verifies the admin password.
type Service struct {
	cfg config.AdminAuthConfig
}

// New creates the auth service.
func New(cfg config.AdminAuthConfig) *Service {
	return &Service{cfg: cfg}
}

// VerifyPassword checks the submitted password against the configured secret.
// A bcrypt hash takes precedence over the plaintext secret; the plaintext
// comparison is constant time.
func (s *Service) VerifyPassword(password string) error {
	if hash := s.cfg.GetAdminPasswordHash(); hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return apperr.Unauthorized("Invalid password").WithOp("auth.VerifyPassword")
		}
		return nil
	}

	secret := s.cfg.GetAdminPassword()
	if secret == "" {
		// Config validation rejects this at boot; guard anyway.
		return apperr.Internal("admin password not configured").WithOp("auth.VerifyPassword")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(secret)) != 1 {
		return apperr.Unauthorized("Invalid password").WithOp("auth.VerifyPassword")
	}
	return nil
}
