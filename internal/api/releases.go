package api

import (
	"context"
	"fmt"
	"time"
)

// Release is the server's record of one export of a dataset. Available
// is false while the export job is still running.
type Release struct {
	Name       string    `json:"name"`
	ImageCount int       `json:"image_count"`
	ClassCount int       `json:"class_count"`
	ExportDate time.Time `json:"export_date"`
	Available  bool      `json:"available"`
}

// CreateReleaseRequest asks the server to export the dataset's current
// annotation state. The server assigns a name when none is given.
type CreateReleaseRequest struct {
	Name     string `json:"name,omitempty"`
	ClassIDs []int  `json:"annotation_class_ids,omitempty"`
}

// CreateRelease starts a server-side export job. The call returns as
// soon as the job is accepted; the release becomes available later and
// is observed by polling ListReleases.
func (c *Client) CreateRelease(ctx context.Context, team, slug string, req CreateReleaseRequest) (*Release, error) {
	var rel Release
	path := fmt.Sprintf("/teams/%s/datasets/%s/releases", team, slug)
	if err := c.post(ctx, path, req, &rel); err != nil {
		return nil, resourceErr(err, fmt.Sprintf("dataset %s/%s", team, slug))
	}
	return &rel, nil
}

// ListReleases returns every release of the dataset, including ones
// still being generated. No ordering is guaranteed by the server.
func (c *Client) ListReleases(ctx context.Context, team, slug string) ([]Release, error) {
	var releases []Release
	path := fmt.Sprintf("/teams/%s/datasets/%s/releases", team, slug)
	if err := c.get(ctx, path, nil, &releases); err != nil {
		return nil, resourceErr(err, fmt.Sprintf("dataset %s/%s", team, slug))
	}
	return releases, nil
}
