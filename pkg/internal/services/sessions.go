package services

import (
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID uint `json:"account_id"`
}

func getSessionSecret() ([]byte, error) {
	secret := viper.GetString("security.session_secret")
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret was not configured")
	}
	return []byte(secret), nil
}

func NewSessionToken(user models.Account) (string, time.Time, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", time.Time{}, err
	}

	expiredAt := time.Now().Add(viper.GetDuration("security.session_ttl"))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiredAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: user.ID,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", expiredAt, fmt.Errorf("unable to sign session token: %v", err)
	}
	return signed, expiredAt, nil
}

func ParseSessionToken(tokenString string) (uint, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return 0, err
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("invalid session token: %v", err)
	} else if !token.Valid || claims.AccountID == 0 {
		return 0, fmt.Errorf("invalid session token")
	}

	return claims.AccountID, nil
}
