// Package assets uploads product photos to the external asset host
// (a Cloudinary-compatible API) and removes them when products go.
package assets

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"spottive/internal/core/apperror"
	"spottive/pkg/logger"
)

// Config holds asset host credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder groups all uploads of this deployment.
	Folder string
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	Timeout time.Duration
}

// Asset identifies one stored image.
type Asset struct {
	// ID is the host-side public id used for later deletion.
	ID string `json:"publicId"`
	// URL is the public delivery URL.
	URL string `json:"url"`
}

// Client talks to the asset host.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// NewClient creates an asset host client. Missing credentials are a
// configuration error: callers decide whether to run without uploads.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("asset host credentials missing")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Folder == "" {
		cfg.Folder = "spottive"
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.WithComponent("assets"),
	}, nil
}

// Upload stores an image and returns its asset handle.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (*Asset, error) {
	params := map[string]string{
		"folder":    c.cfg.Folder,
		"timestamp": fmt.Sprint(time.Now().Unix()),
	}
	params["signature"] = c.sign(params)
	params["api_key"] = c.cfg.APIKey

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write upload field: %w", err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write upload data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish upload body: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.Unavailable("asset host unreachable").WithDetail("cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError("upload", resp)
	}

	var result struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	deliveryURL := result.SecureURL
	if deliveryURL == "" {
		deliveryURL = result.URL
	}
	c.log.Debugw("image uploaded", "asset_id", result.PublicID)
	return &Asset{ID: result.PublicID, URL: deliveryURL}, nil
}

// Destroy removes a stored image. Unknown ids are treated as already
// gone.
func (c *Client) Destroy(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}

	params := map[string]string{
		"public_id": assetID,
		"timestamp": fmt.Sprint(time.Now().Unix()),
	}
	params["signature"] = c.sign(params)
	params["api_key"] = c.cfg.APIKey

	form := make([]string, 0, len(params))
	for key, value := range params {
		form = append(form, key+"="+value)
	}
	body := strings.NewReader(strings.Join(form, "&"))

	url := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("build destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Unavailable("asset host unreachable").WithDetail("cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.hostError("destroy", resp)
	}
	return nil
}

// sign produces the request signature: sorted params joined with &,
// concatenated with the API secret, SHA-1 hashed.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) hostError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	c.log.Warnw("asset host request failed",
		"op", op,
		"status", resp.StatusCode,
		"body", string(snippet),
	)
	return apperror.Unavailable("asset host rejected "+op).
		WithDetail("status", resp.StatusCode)
}
