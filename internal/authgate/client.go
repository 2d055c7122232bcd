package authgate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrAccessDenied is the only error Verify returns. An invalid token
// and an unreachable auth service are deliberately indistinguishable
// to the caller; the underlying cause is logged instead.
var ErrAccessDenied = errors.New("access denied by auth service")

const defaultTimeout = 10 * time.Second

// Client talks to the external account-authentication service.
type Client struct {
	base       string
	httpClient *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type checkRequest struct {
	AccessToken string `json:"access_token"`
}

type checkResponse struct {
	Ok bool `json:"ok"`
}

// Verify makes a single call to the auth service with the given access
// token. No retries; one failed attempt is a final denial.
func (c *Client) Verify(ctx context.Context, accessToken string) error {
	body, err := json.Marshal(checkRequest{AccessToken: accessToken})
	if err != nil {
		return ErrAccessDenied
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth.check", bytes.NewReader(body))
	if err != nil {
		log.Printf("authgate: failed to build request: %v", err)
		return ErrAccessDenied
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("authgate: auth service call failed: %v", err)
		return ErrAccessDenied
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("authgate: auth service returned status %d", resp.StatusCode)
		return ErrAccessDenied
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("authgate: failed to decode auth response: %v", err)
		return ErrAccessDenied
	}
	if !out.Ok {
		return ErrAccessDenied
	}

	return nil
}
