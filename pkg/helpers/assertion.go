package helpers

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAssertionRejected covers every way an external assertion can fail
// verification: bad signature, wrong issuer/audience, expired, malformed.
var ErrAssertionRejected = errors.New("assertion rejected")

// AssertionClaims is the payload vouched for by the front-end identity
// provider once the signature checks out.
type AssertionClaims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	jwt.RegisteredClaims
}

// ProviderKey is the verification material for one identity provider.
type ProviderKey struct {
	PublicKeyPEM string
	Issuer       string
	Audience     string
}

// AssertionVerifier validates ES256-signed assertions from the front-end.
// A provider-specific key takes precedence; otherwise the default key is used,
// so a single-key deployment keeps working unchanged.
type AssertionVerifier struct {
	defaultKey *verifierKey
	byProvider map[string]*verifierKey
}

type verifierKey struct {
	key      *ecdsa.PublicKey
	issuer   string
	audience string
}

func parseKey(pk ProviderKey) (*verifierKey, error) {
	pub, err := jwt.ParseECPublicKeyFromPEM([]byte(pk.PublicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse assertion public key: %w", err)
	}
	return &verifierKey{key: pub, issuer: pk.Issuer, audience: pk.Audience}, nil
}

// NewAssertionVerifier builds a verifier from the default key plus optional
// per-provider overrides. An empty default PEM is allowed; exchange then
// rejects every assertion until a key is configured.
func NewAssertionVerifier(def ProviderKey, overrides map[string]ProviderKey) (*AssertionVerifier, error) {
	var dk *verifierKey
	if def.PublicKeyPEM != "" {
		var err error
		dk, err = parseKey(def)
		if err != nil {
			return nil, err
		}
	}
	v := &AssertionVerifier{defaultKey: dk, byProvider: map[string]*verifierKey{}}
	for provider, pk := range overrides {
		k, err := parseKey(pk)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", provider, err)
		}
		v.byProvider[provider] = k
	}
	return v, nil
}

// Verify checks signature, issuer, and audience and returns the decoded
// payload. Any failure maps to ErrAssertionRejected.
func (v *AssertionVerifier) Verify(assertion, provider string) (*AssertionClaims, error) {
	vk := v.defaultKey
	if k, ok := v.byProvider[provider]; ok {
		vk = k
	}
	if vk == nil {
		return nil, ErrAssertionRejected
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
	}
	if vk.issuer != "" {
		opts = append(opts, jwt.WithIssuer(vk.issuer))
	}
	if vk.audience != "" {
		opts = append(opts, jwt.WithAudience(vk.audience))
	}
	claims := &AssertionClaims{}
	tkn, err := jwt.ParseWithClaims(assertion, claims, func(token *jwt.Token) (interface{}, error) {
		return vk.key, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, ErrAssertionRejected
	}
	if claims.Email == "" {
		return nil, ErrAssertionRejected
	}
	return claims, nil
}
