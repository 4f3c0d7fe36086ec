package response

import (
	"time"

	"erp-backend/pkg/token"
)

type TokenPairResponse struct {
	Access           string    `json:"access"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	Refresh          string    `json:"refresh"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type AccessTokenResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"access_expires_at"`
}

func TokenPairToResponse(pair *token.Pair) TokenPairResponse {
	return TokenPairResponse{
		Access:           pair.Access,
		AccessExpiresAt:  pair.AccessExpiresAt,
		Refresh:          pair.Refresh,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
