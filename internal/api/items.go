package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// ItemType tags an upload as a static image or a video container.
type ItemType string

const (
	ItemImage ItemType = "image"
	ItemVideo ItemType = "video"
)

// UploadItem is one file to register and upload into a remote dataset.
// FrameRate is only meaningful for videos; the server extracts frames
// at that rate once the container has been received.
type UploadItem struct {
	Path      string
	Name      string
	Type      ItemType
	FrameRate float64
}

// UploadFile streams one item into the dataset as a multipart request.
// The request is not retried: a broken upload is reported to the caller,
// which owns retry policy per task.
func (c *Client) UploadFile(ctx context.Context, team, slug string, item UploadItem) error {
	f, err := os.Open(item.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", item.Path, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeItemParts(mw, item, f)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	u := fmt.Sprintf("%s/teams/%s/datasets/%s/items", c.baseURL, team, slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, pr)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), Resource: item.Name}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return resourceErr(&Error{
			StatusCode: resp.StatusCode,
			Kind:       kindForStatus(resp.StatusCode),
		}, item.Name)
	}
	return nil
}

func writeItemParts(mw *multipart.Writer, item UploadItem, f *os.File) error {
	if err := mw.WriteField("type", string(item.Type)); err != nil {
		return err
	}
	if item.Type == ItemVideo {
		if err := mw.WriteField("fps", strconv.FormatFloat(item.FrameRate, 'f', -1, 64)); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("file", item.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

// Asset is one downloadable file belonging to a release: an image or an
// annotation document. URL may be relative to the service base URL or a
// pre-signed absolute link into external storage.
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ReleaseAssets returns the manifest of files making up a release.
func (c *Client) ReleaseAssets(ctx context.Context, team, slug, version string) ([]Asset, error) {
	var assets []Asset
	path := fmt.Sprintf("/teams/%s/datasets/%s/releases/%s/assets", team, slug, version)
	if err := c.get(ctx, path, nil, &assets); err != nil {
		return nil, resourceErr(err, fmt.Sprintf("release %s/%s:%s", team, slug, version))
	}
	return assets, nil
}

// DownloadAsset streams an asset's content into dst.
func (c *Client) DownloadAsset(ctx context.Context, asset Asset, dst io.Writer) error {
	u := asset.URL
	if strings.HasPrefix(u, "/") {
		u = c.baseURL + u
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}
	if strings.HasPrefix(u, c.baseURL) {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), Resource: asset.Name}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return resourceErr(&Error{
			StatusCode: resp.StatusCode,
			Kind:       kindForStatus(resp.StatusCode),
		}, asset.Name)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", asset.Name, err)
	}
	return nil
}
