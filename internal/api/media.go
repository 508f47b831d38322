package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// UploadImage replaces an item image (kind is Primary, Backdrop, ...). The
// server expects the raw image base64-encoded with its content type in the
// header, not a JSON envelope.
func (c *Client) UploadImage(ctx context.Context, itemID, kind string, data []byte, contentType string) error {
	if contentType == "" {
		return fmt.Errorf("image content type required")
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	endpoint := "/Items/" + itemID + "/Images/" + kind
	return c.do(ctx, http.MethodPost, endpoint, nil, strings.NewReader(encoded), contentType, nil)
}

// DeleteImage removes an item image.
func (c *Client) DeleteImage(ctx context.Context, itemID, kind string) error {
	return c.do(ctx, http.MethodDelete, "/Items/"+itemID+"/Images/"+kind, nil, nil, "", nil)
}

// SearchSubtitles queries the server's subtitle providers for an item.
func (c *Client) SearchSubtitles(ctx context.Context, itemID, language string) ([]RemoteSubtitle, error) {
	var subs []RemoteSubtitle
	endpoint := "/Items/" + itemID + "/RemoteSearch/Subtitles/" + language
	if err := c.getJSON(ctx, endpoint, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// DownloadSubtitle asks the server to fetch and attach a remote subtitle.
func (c *Client) DownloadSubtitle(ctx context.Context, itemID, subtitleID string) error {
	endpoint := "/Items/" + itemID + "/RemoteSearch/Subtitles/" + subtitleID
	return c.do(ctx, http.MethodPost, endpoint, nil, nil, "", nil)
}

// DeleteSubtitle removes an attached subtitle stream by index.
func (c *Client) DeleteSubtitle(ctx context.Context, itemID string, index int) error {
	endpoint := fmt.Sprintf("/Videos/%s/Subtitles/%d", itemID, index)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, "", nil)
}

// OpenOriginal opens the item's original file for streaming to disk. The
// caller owns the response body. A non-zero offset resumes via a Range
// request; whether the server honored it shows in the response status.
func (c *Client) OpenOriginal(ctx context.Context, itemID string, offset int64) (*http.Response, error) {
	endpoint := c.baseURL + "/Items/" + itemID + "/Download"
	params := url.Values{}
	params.Set("api_key", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}
	c.applyAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	return resp, nil
}
