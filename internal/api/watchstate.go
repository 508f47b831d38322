package api

import (
	"context"
	"net/http"
)

// SetFavorite toggles the favorite flag on an item. A non-2xx response comes
// back as a *StatusError so the caller can revert its optimistic state.
func (c *Client) SetFavorite(ctx context.Context, itemID string, favorite bool) error {
	endpoint := "/Users/" + c.userID + "/FavoriteItems/" + itemID
	method := http.MethodPost
	if !favorite {
		method = http.MethodDelete
	}
	return c.do(ctx, method, endpoint, nil, nil, "", nil)
}

// SetPlayed toggles the played flag on an item.
func (c *Client) SetPlayed(ctx context.Context, itemID string, played bool) error {
	endpoint := "/Users/" + c.userID + "/PlayedItems/" + itemID
	method := http.MethodPost
	if !played {
		method = http.MethodDelete
	}
	return c.do(ctx, method, endpoint, nil, nil, "", nil)
}

// UpdateUserConfiguration replaces the server-side playback configuration of
// the session's user.
func (c *Client) UpdateUserConfiguration(ctx context.Context, cfg UserConfiguration) error {
	return c.postJSON(ctx, "/Users/"+c.userID+"/Configuration", nil, cfg, nil)
}
