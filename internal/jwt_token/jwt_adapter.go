package jwttoken

import (
	authmw "mintgate/pkg/platform/middleware/auth"
)

var _ authmw.JWTValidator = (*JWTServiceAdapter)(nil)

// JWTServiceAdapter exposes JWTService through the auth middleware's
// validator contract, reducing claims to the caller principal.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{Principal: claims.Principal(), JTI: claims.ID}, nil
}
