package client

import (
    "context"
    "errors"

    "github.com/zaqqye/classroom_backend/internal/models"
)

// BootstrapState is the outcome of resolving a stored session at startup.
// StateUnreachable is distinct from StateLoggedOut so the UI can offer a
// retry instead of flashing the login form.
type BootstrapState int

const (
    StateLoggedOut BootstrapState = iota
    StateAuthenticated
    StateSessionInvalid // stored token no longer resolves; token cleared
    StateUnreachable    // resolution timed out or transport failed; token kept
)

// Bootstrap resolves the persisted token to a user record, racing the call
// against BootstrapTimeout.
func (c *Client) Bootstrap(ctx context.Context) (BootstrapState, *models.User, error) {
    token, err := c.Tokens.Load()
    if err != nil {
        return StateLoggedOut, nil, err
    }
    if token == "" {
        return StateLoggedOut, nil, nil
    }
    c.token = token

    resolveCtx, cancel := context.WithTimeout(ctx, c.BootstrapTimeout)
    defer cancel()

    user, err := c.Me(resolveCtx)
    if err != nil {
        var apiErr *APIError
        if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 404) {
            // Record deleted or token expired server-side: treat as logged out.
            c.token = ""
            _ = c.Tokens.Clear()
            return StateSessionInvalid, nil, nil
        }
        return StateUnreachable, nil, err
    }
    return StateAuthenticated, user, nil
}
