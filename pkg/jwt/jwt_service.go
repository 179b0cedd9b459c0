package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/internal/utils"
)

type (
	// JWTService validates bearer tokens minted by the external identity
	// provider (shared HS256 secret). The subject claim is the stable
	// identity reference; email and name ride along when present.
	JWTService interface {
		ValidateIdentityToken(token string) (IdentityClaims, error)
	}

	IdentityClaims struct {
		Subject  string
		Email    string
		FullName string
	}

	identityTokenClaims struct {
		Email        string `json:"email"`
		UserMetadata struct {
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("IDENTITY_JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
	}
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateIdentityToken(token string) (IdentityClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityTokenClaims{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return IdentityClaims{}, domain.ErrTokenExpired
		}
		return IdentityClaims{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return IdentityClaims{}, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*identityTokenClaims)
	if !ok || claims.Subject == "" {
		return IdentityClaims{}, domain.ErrTokenInvalid
	}

	return IdentityClaims{
		Subject:  claims.Subject,
		Email:    claims.Email,
		FullName: claims.UserMetadata.FullName,
	}, nil
}
