package api

import (
	"context"
	"fmt"
)

// RemoteDataset is the server's view of a dataset. Progress is the
// fraction of items with completed annotation work; the client never
// writes it back.
type RemoteDataset struct {
	Team       string  `json:"team_slug"`
	Slug       string  `json:"dataset_slug"`
	Name       string  `json:"name"`
	ImageCount int     `json:"image_count"`
	Progress   float64 `json:"progress"`
}

// Team is a team the authenticated user belongs to.
type Team struct {
	Slug    string `json:"slug"`
	Default bool   `json:"default"`
}

// Profile describes the authenticated user.
type Profile struct {
	DefaultTeam string `json:"default_team"`
	Teams       []Team `json:"teams"`
}

// ValidateAPIKey checks the configured key against the service and
// returns the account profile. An invalid key surfaces as an
// unauthenticated error.
func (c *Client) ValidateAPIKey(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/users/token_info", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateDataset creates a dataset named name under team. Collisions with
// an existing name surface as a name-taken error, illegal names as a
// validation error.
func (c *Client) CreateDataset(ctx context.Context, team, name string) (*RemoteDataset, error) {
	var ds RemoteDataset
	body := map[string]string{"name": name}
	path := fmt.Sprintf("/teams/%s/datasets", team)
	if err := c.post(ctx, path, body, &ds); err != nil {
		return nil, resourceErr(err, fmt.Sprintf("dataset %q", name))
	}
	return &ds, nil
}

// GetRemoteDataset fetches the dataset addressed by team/slug.
func (c *Client) GetRemoteDataset(ctx context.Context, team, slug string) (*RemoteDataset, error) {
	var ds RemoteDataset
	path := fmt.Sprintf("/teams/%s/datasets/%s", team, slug)
	if err := c.get(ctx, path, nil, &ds); err != nil {
		return nil, resourceErr(err, fmt.Sprintf("dataset %s/%s", team, slug))
	}
	return &ds, nil
}

// ListRemoteDatasets enumerates the datasets of a team.
func (c *Client) ListRemoteDatasets(ctx context.Context, team string) ([]RemoteDataset, error) {
	var datasets []RemoteDataset
	path := fmt.Sprintf("/teams/%s/datasets", team)
	if err := c.get(ctx, path, nil, &datasets); err != nil {
		return nil, resourceErr(err, fmt.Sprintf("team %s", team))
	}
	return datasets, nil
}

// ArchiveDataset archives (soft-deletes) a remote dataset.
func (c *Client) ArchiveDataset(ctx context.Context, team, slug string) error {
	path := fmt.Sprintf("/teams/%s/datasets/%s/archive", team, slug)
	if err := c.put(ctx, path, nil, nil); err != nil {
		return resourceErr(err, fmt.Sprintf("dataset %s/%s", team, slug))
	}
	return nil
}

// DatasetURL returns the human-facing URL of a remote dataset.
func (c *Client) DatasetURL(team, slug string) string {
	return fmt.Sprintf("%s/teams/%s/datasets/%s", c.baseURL, team, slug)
}
