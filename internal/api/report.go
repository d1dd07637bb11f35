package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GetReport fetches the dataset's annotation report aggregated at the
// given granularity. The service renders the report as CSV; it is
// returned verbatim for the caller to print or save.
func (c *Client) GetReport(ctx context.Context, team, slug, granularity string) (string, error) {
	u := fmt.Sprintf("%s/teams/%s/datasets/%s/report?granularity=%s",
		c.baseURL, team, slug, url.QueryEscape(granularity))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create report request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: err.Error(), Resource: fmt.Sprintf("dataset %s/%s", team, slug)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", resourceErr(&Error{
			StatusCode: resp.StatusCode,
			Kind:       kindForStatus(resp.StatusCode),
		}, fmt.Sprintf("dataset %s/%s", team, slug))
	}
	return string(body), nil
}
