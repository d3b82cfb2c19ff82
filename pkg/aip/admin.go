package aip

import (
	"context"
	"net/http"
	"net/url"
)

// APIKeyPermissions enumerates what an API key may do.
type APIKeyPermissions struct {
	Read   bool `json:"read"`
	Write  bool `json:"write"`
	Delete bool `json:"delete"`
}

// APIKeyRequest is the payload for creating an API key.
type APIKeyRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Permissions APIKeyPermissions `json:"permissions"`
	RateLimit   int               `json:"rateLimit,omitempty"`
	ExpiresAt   string            `json:"expiresAt,omitempty"`
}

// APIKey describes a registry API key. Key is only populated in the
// creation response; the registry never returns it again.
type APIKey struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Key         string            `json:"key,omitempty"`
	KeyPreview  string            `json:"keyPreview,omitempty"`
	Permissions APIKeyPermissions `json:"permissions"`
	IsActive    bool              `json:"isActive"`
	LastUsedAt  string            `json:"lastUsedAt,omitempty"`
}

// apiKeyList is the wire envelope of the key listing endpoint.
type apiKeyList struct {
	APIKeys []APIKey `json:"apiKeys"`
}

// CreateAPIKey creates a new API key via the registry's admin surface.
// The returned key secret is shown exactly once.
func (c *Client) CreateAPIKey(ctx context.Context, req APIKeyRequest) (*APIKey, error) {
	resp, err := c.do(ctx, http.MethodPost, "/admin/api-keys", nil, req)
	if err != nil {
		return nil, err
	}
	var key APIKey
	if err := resp.decode(&key); err != nil {
		return nil, err
	}
	return &key, nil
}

// ListAPIKeys returns all API keys known to the registry.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admin/api-keys", nil, nil)
	if err != nil {
		return nil, err
	}
	var list apiKeyList
	if err := resp.decode(&list); err != nil {
		return nil, err
	}
	return list.APIKeys, nil
}

// RevokeAPIKey disables a key without deleting it.
func (c *Client) RevokeAPIKey(ctx context.Context, keyID string) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/api-keys/"+url.PathEscape(keyID)+"/revoke", nil, nil)
	return err
}

// DeleteAPIKey permanently removes a key.
func (c *Client) DeleteAPIKey(ctx context.Context, keyID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/api-keys/"+url.PathEscape(keyID), nil, nil)
	return err
}
