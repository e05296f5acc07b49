// Package storage synchronizes the local ceremony tree with the remote
// bucket that participants upload contributions to. The bucket is plain
// HTTP: a manifest.json index plus one object per ceremony file.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Client talks to the remote ceremony bucket.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
	concurrency int
}

// Option configures the Client during construction.
type Option func(*Client) error

// New creates a Client for the bucket at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("storage: baseURL is required")
	}
	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  &http.Client{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithConcurrency bounds the number of parallel file transfers.
func WithConcurrency(n int) Option {
	return func(c *Client) error {
		if n < 1 {
			return fmt.Errorf("storage: concurrency must be >= 1, got %d", n)
		}
		c.concurrency = n
		return nil
	}
}

// Manifest fetches and parses the bucket index.
func (c *Client) Manifest(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/manifest.json", nil)
	if err != nil {
		return nil, fmt.Errorf("manifest: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("manifest: do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest: %s returned %s", c.baseURL, resp.Status)
	}

	var m Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	return &m, nil
}

// EnsureBaseline downloads the lexically-first remote folder into root if
// needed and returns its name. A bucket with no folders is a fatal setup
// condition for the ceremony.
func (c *Client) EnsureBaseline(ctx context.Context, root string) (string, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return "", err
	}
	folders := m.SortedFolders()
	if len(folders) == 0 {
		return "", fmt.Errorf("bucket %s has no contribution folders", c.baseURL)
	}
	if err := c.pullFolder(ctx, root, folders[0]); err != nil {
		return "", err
	}
	return folders[0].Name, nil
}

// EnsureContributions downloads every remote folder into root and returns
// the folder names in ceremony order.
func (c *Client) EnsureContributions(ctx context.Context, root string) ([]string, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range m.SortedFolders() {
		if err := c.pullFolder(ctx, root, f); err != nil {
			return nil, err
		}
		names = append(names, f.Name)
	}
	return names, nil
}

// EnsureParams downloads the shared powers-of-tau file into root if needed
// and returns its local path. A bucket without one is a fatal setup
// condition: every verification invocation depends on it.
func (c *Client) EnsureParams(ctx context.Context, root string) (string, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return "", err
	}
	if m.Params == nil {
		return "", fmt.Errorf("bucket %s manifest has no params file", c.baseURL)
	}
	local := filepath.Join(root, m.Params.Name)
	if err := c.pullFile(ctx, c.objectURL("", m.Params.Name), local, m.Params.SHA256); err != nil {
		return "", err
	}
	return local, nil
}

// Push uploads every file of the named local folder to the bucket.
func (c *Client) Push(ctx context.Context, root, folder string) error {
	dir := filepath.Join(root, folder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("push %s: %w", folder, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		g.Go(func() error {
			return c.putFile(ctx, filepath.Join(dir, name), c.objectURL(folder, name))
		})
	}
	return g.Wait()
}

// pullFolder downloads a remote folder's files into root/<name>, in
// parallel up to the configured bound. Files already present with a
// matching digest are skipped.
func (c *Client) pullFolder(ctx context.Context, root string, f Folder) error {
	dir := filepath.Join(root, f.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("pull %s: %w", f.Name, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, file := range f.Files {
		g.Go(func() error {
			return c.pullFile(ctx, c.objectURL(f.Name, file.Name), filepath.Join(dir, file.Name), file.SHA256)
		})
	}
	return g.Wait()
}

// pullFile downloads one object to local unless a copy with the expected
// digest already exists. The download goes to a temp file first so a
// partial transfer never masquerades as a synced artifact.
func (c *Client) pullFile(ctx context.Context, srcURL, local, wantSHA string) error {
	if sum, err := fileSHA256(local); err == nil {
		if wantSHA == "" || sum == wantSHA {
			c.logger.DebugContext(ctx, "already synced", "path", local)
			return nil
		}
		c.logger.WarnContext(ctx, "digest mismatch, re-downloading", "path", local)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("pull %s: create request: %w", srcURL, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pull %s: do request: %w", srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pull %s: %s", srcURL, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("pull %s: %w", local, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(local), ".sync-*")
	if err != nil {
		return fmt.Errorf("pull %s: %w", local, err)
	}
	defer os.Remove(tmp.Name())

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("pull %s: %w", local, err)
	}
	if sum := hex.EncodeToString(h.Sum(nil)); wantSHA != "" && sum != wantSHA {
		return fmt.Errorf("pull %s: digest mismatch: got %s, want %s", local, sum, wantSHA)
	}

	if err := os.Rename(tmp.Name(), local); err != nil {
		return fmt.Errorf("pull %s: %w", local, err)
	}
	c.logger.InfoContext(ctx, "downloaded", "path", local, "bytes", n)
	return nil
}

func (c *Client) putFile(ctx context.Context, local, dstURL string) error {
	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("push %s: %w", local, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("push %s: %w", local, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, dstURL, f)
	if err != nil {
		return fmt.Errorf("push %s: create request: %w", local, err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push %s: do request: %w", local, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push %s: %s", local, resp.Status)
	}
	c.logger.InfoContext(ctx, "uploaded", "path", local, "bytes", info.Size())
	return nil
}

func (c *Client) objectURL(folder, name string) string {
	if folder == "" {
		return c.baseURL + "/" + url.PathEscape(name)
	}
	return c.baseURL + "/" + url.PathEscape(folder) + "/" + url.PathEscape(name)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
