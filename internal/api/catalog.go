package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ItemsQuery narrows an item listing. Zero values mean "no filter".
type ItemsQuery struct {
	ParentID     string
	SearchTerm   string
	IncludeTypes []string
	Recursive    bool
	Limit        int
	StartIndex   int
	SortBy       string
}

// Views lists the user's top-level library views (Movies, Shows, ...).
func (c *Client) Views(ctx context.Context) ([]Item, error) {
	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Users/"+c.userID+"/Views", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Items lists catalog items matching the query.
func (c *Client) Items(ctx context.Context, q ItemsQuery) ([]Item, error) {
	params := url.Values{}
	if q.ParentID != "" {
		params.Set("ParentId", q.ParentID)
	}
	if q.SearchTerm != "" {
		params.Set("SearchTerm", q.SearchTerm)
	}
	if len(q.IncludeTypes) > 0 {
		params.Set("IncludeItemTypes", strings.Join(q.IncludeTypes, ","))
	}
	if q.Recursive {
		params.Set("Recursive", "true")
	}
	if q.Limit > 0 {
		params.Set("Limit", fmt.Sprintf("%d", q.Limit))
	}
	if q.StartIndex > 0 {
		params.Set("StartIndex", fmt.Sprintf("%d", q.StartIndex))
	}
	if q.SortBy != "" {
		params.Set("SortBy", q.SortBy)
	}
	if c.userID != "" {
		params.Set("UserId", c.userID)
	}

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Items", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Search is a recursive item search over movies, series and episodes.
func (c *Client) Search(ctx context.Context, term string, types []string, limit int) ([]Item, error) {
	return c.Items(ctx, ItemsQuery{
		SearchTerm:   term,
		IncludeTypes: types,
		Recursive:    true,
		Limit:        limit,
	})
}

// Item fetches one item with user data, media sources and trickplay info.
func (c *Client) Item(ctx context.Context, itemID string) (*Item, error) {
	params := url.Values{}
	if c.userID != "" {
		params.Set("UserId", c.userID)
	}
	params.Set("Fields", "MediaSources,Trickplay,Overview,Path")

	var item Item
	if err := c.getJSON(ctx, "/Items/"+itemID, params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Seasons lists the seasons of a series.
func (c *Client) Seasons(ctx context.Context, seriesID string) ([]Item, error) {
	params := url.Values{}
	if c.userID != "" {
		params.Set("UserId", c.userID)
	}

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Shows/"+seriesID+"/Seasons", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Episodes lists the episodes of a series, optionally narrowed to a season.
func (c *Client) Episodes(ctx context.Context, seriesID, seasonID string) ([]Item, error) {
	params := url.Values{}
	if c.userID != "" {
		params.Set("UserId", c.userID)
	}
	if seasonID != "" {
		params.Set("SeasonId", seasonID)
	}

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Shows/"+seriesID+"/Episodes", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// NextUp returns the next unwatched episode(s), optionally for one series.
func (c *Client) NextUp(ctx context.Context, seriesID string, limit int) ([]Item, error) {
	params := url.Values{}
	if c.userID != "" {
		params.Set("UserId", c.userID)
	}
	if seriesID != "" {
		params.Set("SeriesId", seriesID)
	}
	if limit > 0 {
		params.Set("Limit", fmt.Sprintf("%d", limit))
	}

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Shows/NextUp", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Latest returns the most recently added items of a library view.
func (c *Client) Latest(ctx context.Context, parentID string, limit int) ([]Item, error) {
	params := url.Values{}
	if parentID != "" {
		params.Set("ParentId", parentID)
	}
	if limit > 0 {
		params.Set("Limit", fmt.Sprintf("%d", limit))
	}

	// This endpoint returns a bare array, not an ItemsResponse envelope.
	var items []Item
	if err := c.getJSON(ctx, "/Users/"+c.userID+"/Items/Latest", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}
