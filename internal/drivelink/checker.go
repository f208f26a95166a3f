package drivelink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"courseaudit/internal/logging"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "courseaudit/1.0"

	publicBaseURL = "https://drive.google.com"
	apiBaseURL    = "https://www.googleapis.com/drive/v3"
)

// Checker classifies one Drive link. Implementations never return an
// error; every failure mode maps onto a Status.
type Checker interface {
	Check(ctx context.Context, link string) Status
}

// New selects a Checker from configuration: Disabled when checking is
// off, APIChecker when a token is configured, PublicChecker otherwise.
func New(enabled bool, apiToken string, timeout time.Duration, logger *slog.Logger) Checker {
	if !enabled {
		return Disabled{}
	}
	if apiToken != "" {
		return NewAPIChecker(apiToken, timeout, logger)
	}
	return NewPublicChecker(timeout, logger)
}

// Disabled reports Not Checked for every link without touching the
// network.
type Disabled struct{}

func (Disabled) Check(_ context.Context, link string) Status {
	if strings.TrimSpace(link) == "" {
		return StatusNoLink
	}
	return StatusNotChecked
}

// PublicChecker fetches the public file or folder URL anonymously.
// Google redirects private content to its login page, so a final URL on
// accounts.google.com means the link exists but is not accessible.
type PublicChecker struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewPublicChecker(timeout time.Duration, logger *slog.Logger) *PublicChecker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PublicChecker{
		client:  &http.Client{Timeout: timeout},
		baseURL: publicBaseURL,
		logger:  logging.NewComponentLogger(logger, "drivelink"),
	}
}

func (c *PublicChecker) Check(ctx context.Context, link string) Status {
	if strings.TrimSpace(link) == "" {
		return StatusNoLink
	}
	fileID, ok := FileID(link)
	if !ok {
		return StatusBroken
	}

	url := fmt.Sprintf("%s/uc?id=%s&export=download", c.baseURL, fileID)
	if IsFolder(link) {
		url = fmt.Sprintf("%s/drive/folders/%s", c.baseURL, fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusBroken
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("public probe failed",
			logging.String("file_id", fileID),
			logging.Error(err))
		return StatusBroken
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()
	if strings.Contains(final, "accounts.google.com") || strings.Contains(final, "ServiceLogin") {
		return StatusMissing
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		return StatusAvailable
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusNotFound:
		return StatusMissing
	default:
		return StatusBroken
	}
}

// APIChecker asks the Drive v3 metadata endpoint about the file. A
// trashed file counts as missing. API errors other than 404 fall back to
// the public probe so an expired token degrades instead of failing the
// whole audit.
type APIChecker struct {
	client   *http.Client
	token    string
	baseURL  string
	fallback *PublicChecker
	logger   *slog.Logger
}

func NewAPIChecker(token string, timeout time.Duration, logger *slog.Logger) *APIChecker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &APIChecker{
		client:   &http.Client{Timeout: timeout},
		token:    token,
		baseURL:  apiBaseURL,
		fallback: NewPublicChecker(timeout, logger),
		logger:   logging.NewComponentLogger(logger, "drivelink"),
	}
}

func (c *APIChecker) Check(ctx context.Context, link string) Status {
	if strings.TrimSpace(link) == "" {
		return StatusNoLink
	}
	fileID, ok := FileID(link)
	if !ok {
		return StatusBroken
	}

	url := fmt.Sprintf("%s/files/%s?fields=id,name,trashed&supportsAllDrives=true", c.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusBroken
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("drive api request failed, falling back to public probe",
			logging.String("file_id", fileID),
			logging.Error(err))
		return c.fallback.Check(ctx, link)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var meta struct {
			Trashed bool `json:"trashed"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
			c.logger.Warn("drive api response undecodable, falling back to public probe",
				logging.String("file_id", fileID),
				logging.Error(err))
			return c.fallback.Check(ctx, link)
		}
		if meta.Trashed {
			return StatusMissing
		}
		return StatusAvailable
	case http.StatusNotFound:
		return StatusMissing
	default:
		c.logger.Warn("drive api error, falling back to public probe",
			logging.String("file_id", fileID),
			logging.Int("status", resp.StatusCode))
		return c.fallback.Check(ctx, link)
	}
}
