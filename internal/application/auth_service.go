package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
	"github.com/oksasatya/second-brain-api/pkg/apperr"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
	"github.com/oksasatya/second-brain-api/pkg/mailer"
)

// TokenPair is the access+refresh bundle issued on successful authentication.
// ExpiresAt mirrors the access token's expiry in the server's local time.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// AssertionVerifier validates an external identity assertion.
type AssertionVerifier interface {
	Verify(assertion, provider string) (*helpers.AssertionClaims, error)
}

// Publisher enqueues background jobs; nil disables publishing.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements local auth, assertion exchange, and token renewal.
// All collaborators are injected; nothing is read from ambient globals.
type AuthService struct {
	Repo     repository.UserRepository
	JWT      *helpers.JWTManager
	Hasher   helpers.PasswordHasher
	Verifier AssertionVerifier
	Pub      Publisher
	Logger   *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, hasher helpers.PasswordHasher, verifier AssertionVerifier, pub Publisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Hasher: hasher, Verifier: verifier, Pub: pub, Logger: logger}
}

func (s *AuthService) issue(userID string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	refresh, _, err := s.JWT.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPair{}, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    aexp.Format(time.RFC1123),
	}, nil
}

// SignUp registers a local account. It does not issue tokens; the client signs
// in afterwards.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) error {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return apperr.Conflict("BE-03", "User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}

	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperr.Conflict("BE-03", "User already exists")
		}
		return apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user created")
	}
	s.publishWelcome(ctx, u)
	return nil
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, mailer.WelcomeEmail(u.Email, u.Name)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// SignIn validates credentials and issues a token pair.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, apperr.NotFound("BE-02", "User not found")
		}
		return TokenPair{}, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	if !s.Hasher.Compare(u.Password, password) {
		return TokenPair{}, apperr.Unauthorized("BE-04", "Invalid password")
	}
	return s.issue(u.ID)
}

// Me resolves the profile for a previously-authenticated user id.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("BE-02", "User not found")
		}
		return nil, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	return u, nil
}

// Exchange verifies a front-end assertion and reconciles the external identity
// against the credential store: find by email, enrich empty profile fields,
// create the user when missing, then issue a token pair.
func (s *AuthService) Exchange(ctx context.Context, assertion, provider string) (TokenPair, error) {
	payload, err := s.Verifier.Verify(assertion, provider)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("BE-05", "Assertion rejected").WithCause(err)
	}

	u, err := s.Repo.GetByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		if u.Name == "" || u.AvatarURL == "" {
			// Best-effort enrichment; the exchange still succeeds if it fails.
			if err := s.Repo.EnrichProfile(ctx, u.ID, payload.Name, payload.AvatarURL); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile enrichment failed")
			}
		}
		return s.issue(u.ID)

	case errors.Is(err, repository.ErrNotFound):
		nu := &entity.User{Name: payload.Name, Email: payload.Email, AvatarURL: payload.AvatarURL}
		if err := s.Repo.UpsertByEmail(ctx, nu); err != nil {
			return TokenPair{}, apperr.Internal("BE-01", "Issue while saving the user").WithCause(err)
		}
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": nu.ID, "provider": provider}).Info("user provisioned from assertion")
		}
		return s.issue(nu.ID)

	default:
		return TokenPair{}, apperr.Internal("BE-01", "Issue while saving the user").WithCause(err)
	}
}

// Refresh decodes a refresh token and re-issues a fresh pair. Missing,
// undecodable, or expired tokens are all Unauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, apperr.Unauthorized("BE-04", "Invalid refresh token")
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("BE-04", "Invalid refresh token").WithCause(err)
	}
	return s.issue(claims.UserID)
}

// SetAvatar records a newly-uploaded avatar URL for the user.
func (s *AuthService) SetAvatar(ctx context.Context, userID, url string) error {
	if err := s.Repo.UpdateAvatar(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("BE-02", "User not found")
		}
		return apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	return nil
}
