package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"golang.org/x/oauth2"
)

// Federated delegates token verification entirely to an external identity
// provider: the inbound bearer token is presented to the provider's
// userinfo endpoint, which either resolves it to a (uid, email) pair or
// rejects it. No local secret is involved.
type Federated struct {
	endpoint string
	base     *http.Client
}

func NewFederated(userInfoEndpoint string) *Federated {
	return &Federated{endpoint: userInfoEndpoint}
}

type userInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (f *Federated) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, common.ErrorUnauthorized
	}

	if f.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.base)
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: credential,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, common.ErrorInternal
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, common.ErrorInternal
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, common.ErrorUnauthorized
	default:
		return nil, common.ErrorInternal
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, common.ErrorInternal
	}
	if info.ID == "" {
		return nil, common.ErrorUnauthorized
	}

	return &Identity{ID: info.ID, Email: info.Email}, nil
}
