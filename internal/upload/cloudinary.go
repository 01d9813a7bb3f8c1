package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/eddiesosera/bb-frontend/internal/config"
	"github.com/eddiesosera/bb-frontend/internal/logging"
)

// CloudinaryGateway uploads cover images to the Cloudinary unsigned upload
// endpoint: POST {base}/v1_1/{cloudName}/image/upload with a multipart body
// carrying the file and the upload preset.
type CloudinaryGateway struct {
	cloudName    string
	uploadPreset string
	baseURL      string
	httpClient   *http.Client
}

// NewCloudinaryGateway configures a gateway for the given cloud.
func NewCloudinaryGateway(cfg config.CloudinaryConfig, httpClient *http.Client) (*CloudinaryGateway, error) {
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, fmt.Errorf("cloudinary gateway: cloud name is required")
	}
	if strings.TrimSpace(cfg.UploadPreset) == "" {
		return nil, fmt.Errorf("cloudinary gateway: upload preset is required")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &CloudinaryGateway{
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		baseURL:      baseURL,
		httpClient:   httpClient,
	}, nil
}

// Upload transfers the file and returns its hosted URL.
func (g *CloudinaryGateway) Upload(ctx context.Context, file File, onProgress func(percent int)) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if _, err := io.Copy(part, file.Data); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := writer.WriteField("upload_preset", g.uploadPreset); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", g.baseURL, g.cloudName)
	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, newProgressReader(&body, total, onProgress))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logging.FromContext(ctx).Warn("cloudinary upload failed", "file", file.Name, "error", err)
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := uploadErrorMessage(resp.Body); msg != "" {
			return "", fmt.Errorf("image upload failed: %s", msg)
		}
		return "", fmt.Errorf("image upload failed: status %d", resp.StatusCode)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.SecureURL == "" {
		return "", fmt.Errorf("image upload failed: malformed response")
	}
	return payload.SecureURL, nil
}

// uploadErrorMessage extracts Cloudinary's error message when present.
func uploadErrorMessage(body io.Reader) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return ""
}
