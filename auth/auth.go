// Package auth obtains and holds the credentials PRTG expects on every API
// request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const passHashEndpoint = "api/getpasshash.htm"

// ErrMissingCredentials is returned when a username or passhash is empty.
var ErrMissingCredentials = errors.New("username and passhash are required")

// Credentials are appended to every request as username and passhash.
type Credentials struct {
	Username string
	PassHash string
}

func (c Credentials) Validate() error {
	if c.Username == "" || c.PassHash == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Query renders the credential suffix of a request URL.
func (c Credentials) Query() string {
	return "username=" + url.QueryEscape(c.Username) + "&passhash=" + url.QueryEscape(c.PassHash)
}

// Server normalizes a PRTG server address into a base URL ending in "/".
// Addresses without a scheme default to https.
func Server(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", errors.New("server address is empty")
	}
	if !strings.Contains(addr, "://") {
		addr = "https://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid server address %q: %w", addr, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server address %q", addr)
	}
	return strings.TrimSuffix(u.String(), "/") + "/", nil
}

// Login exchanges a password for the account's passhash.
func Login(ctx context.Context, client *http.Client, server, username, password string) (Credentials, error) {
	base, err := Server(server)
	if err != nil {
		return Credentials{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+passHashEndpoint, nil)
	if err != nil {
		return Credentials{}, err
	}
	q := req.URL.Query()
	q.Add("username", username)
	q.Add("password", password)
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return Credentials{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credentials{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return Credentials{}, fmt.Errorf("login failed: server returned %s", resp.Status)
	}
	hash := strings.TrimSpace(string(body))
	if !isNumeric(hash) {
		return Credentials{}, fmt.Errorf("login failed: unexpected passhash response %q", truncate(hash, 64))
	}
	return Credentials{Username: username, PassHash: hash}, nil
}

// Connect logs in with a default HTTP client.
func Connect(ctx context.Context, server, username, password string) (Credentials, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	return Login(ctx, client, server, username, password)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
