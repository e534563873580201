package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tya/internal/catalog"
)

// RemoteValidator asks the account service about each token with
// GET {base}/auth/{token}.
type RemoteValidator struct {
	base   string
	client *http.Client
}

// NewRemoteValidator returns a validator for the service at baseURL.
func NewRemoteValidator(baseURL string, timeout time.Duration) *RemoteValidator {
	return &RemoteValidator{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type remoteIdentity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (v *RemoteValidator) Validate(ctx context.Context, token string) (catalog.Identity, error) {
	if token == "" {
		return catalog.Identity{}, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.base+"/auth/"+url.PathEscape(token), nil)
	if err != nil {
		return catalog.Identity{}, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return catalog.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return catalog.Identity{}, ErrUnauthorized
	default:
		return catalog.Identity{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body remoteIdentity
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return catalog.Identity{}, fmt.Errorf("%w: decode identity: %v", ErrUnavailable, err)
	}
	if body.UserID <= 0 {
		return catalog.Identity{}, ErrUnauthorized
	}
	return catalog.Identity{UserID: body.UserID, Username: body.Username}, nil
}
