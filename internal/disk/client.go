// Package disk is a minimal client for the cloud drive REST API that hosts the
// documentation tree. It lists folders for the crawler, resolves download
// links, and builds public docs-viewer URLs for end users.
package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/iotsystems/hdlbot/internal/config"
)

// listLimit is the page size for folder listings. Folders in the tree stay
// well under it, so pagination is not implemented.
const listLimit = 1000

// Resource is one entry in a folder listing.
type Resource struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// IsDir reports whether the resource is a folder.
func (r Resource) IsDir() bool { return r.Type == "dir" }

type listResponse struct {
	Embedded struct {
		Items []Resource `json:"items"`
	} `json:"_embedded"`
}

type downloadResponse struct {
	Href string `json:"href"`
}

// Client talks to the drive API. The zero value is not usable; construct with
// NewClient.
type Client struct {
	baseURL       string
	token         string
	baseFolder    string
	docsPublicKey string
	httpc         *http.Client
}

// NewClient builds a Client from config. A nil httpc gets a 30 second timeout
// client.
func NewClient(cfg config.DiskConfig, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		token:         cfg.Token,
		baseFolder:    cfg.BaseFolder,
		docsPublicKey: cfg.DocsPublicKey,
		httpc:         httpc,
	}
}

// ListFolder returns the direct children of folderPath.
func (c *Client) ListFolder(ctx context.Context, folderPath string) ([]Resource, error) {
	q := url.Values{}
	q.Set("path", folderPath)
	q.Set("limit", strconv.Itoa(listLimit))
	q.Set("fields", "_embedded.items.name,_embedded.items.path,_embedded.items.type")

	var resp listResponse
	if err := c.get(ctx, "/resources?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", folderPath, err)
	}
	return resp.Embedded.Items, nil
}

// DownloadURL resolves a short-lived direct download link for filePath.
func (c *Client) DownloadURL(ctx context.Context, filePath string) (string, error) {
	q := url.Values{}
	q.Set("path", filePath)

	var resp downloadResponse
	if err := c.get(ctx, "/resources/download?"+q.Encode(), &resp); err != nil {
		return "", fmt.Errorf("download link %s: %w", filePath, err)
	}
	if resp.Href == "" {
		return "", fmt.Errorf("download link %s: empty href", filePath)
	}
	return resp.Href, nil
}

// Download fetches the file contents via a resolved download link.
func (c *Client) Download(ctx context.Context, filePath string) ([]byte, error) {
	href, err := c.DownloadURL(ctx, filePath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", filePath, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", filePath, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// BuildDocsURL builds the public docs-viewer link for a file in the shared
// tree. The viewer expects the public key and the path relative to the shared
// root packed into a single url parameter.
func (c *Client) BuildDocsURL(filePath string) string {
	relative := strings.TrimPrefix(filePath, "disk:")
	if c.baseFolder != "/" {
		relative = strings.TrimPrefix(relative, strings.TrimRight(c.baseFolder, "/"))
	}
	relative = strings.TrimPrefix(relative, "/")

	raw := "ya-disk-public://" + c.docsPublicKey + ":/" + relative
	name := path.Base(relative)
	return fmt.Sprintf("https://docs.360.yandex.ru/docs/view?url=%s&name=%s&nosw=1",
		url.QueryEscape(raw), url.QueryEscape(name))
}

func (c *Client) get(ctx context.Context, pathAndQuery string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
