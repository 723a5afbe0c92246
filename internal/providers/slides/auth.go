package slides

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/infra"
)

// Scopes requested for the proposal flow: edit the deck, export it.
var defaultScopes = []string{
	"https://www.googleapis.com/auth/presentations",
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.readonly",
}

// serviceAccount is the subset of a Google service-account JSON key
// file the token flow needs.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// TokenSource mints OAuth2 access tokens from a service-account
// credential using the JWT bearer grant, caching each token until
// shortly before it expires.
type TokenSource struct {
	account serviceAccount
	scopes  []string

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewTokenSource loads a service-account key file and prepares a
// token source for the proposal scopes.
func NewTokenSource(credentialsFile string) (*TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var account serviceAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, fmt.Errorf("credentials file %s is missing client_email or private_key", credentialsFile)
	}
	if account.TokenURI == "" {
		account.TokenURI = "https://oauth2.googleapis.com/token"
	}

	return &TokenSource{account: account, scopes: defaultScopes}, nil
}

// Token returns a valid access token, reusing the cached one when it
// has more than a minute of life left.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Until(ts.expires) > time.Minute {
		return ts.token, nil
	}

	assertion, err := ts.signAssertion()
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	err = infra.DoPostForm(ctx, ts.account.TokenURI, map[string]string{
		"grant_type": "urn:ietf:params:oauth:grant-type:jwt-bearer",
		"assertion":  assertion,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}

	ts.token = resp.AccessToken
	ts.expires = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	return ts.token, nil
}

// signAssertion builds the RS256-signed JWT the token endpoint
// expects for a service-account grant.
func (ts *TokenSource) signAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(ts.account.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   ts.account.ClientEmail,
		"scope": strings.Join(ts.scopes, " "),
		"aud":   ts.account.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}
	return signed, nil
}
