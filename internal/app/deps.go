package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/eddiesosera/bb-frontend/internal/api"
	"github.com/eddiesosera/bb-frontend/internal/articles"
	"github.com/eddiesosera/bb-frontend/internal/config"
	"github.com/eddiesosera/bb-frontend/internal/credentials"
	"github.com/eddiesosera/bb-frontend/internal/session"
	"github.com/eddiesosera/bb-frontend/internal/upload"
)

// Dependencies aggregates the collaborators commands operate on.
type Dependencies struct {
	Config   config.Config
	API      *api.Client
	Session  *session.Store
	Articles *articles.Store
}

// buildDependencies wires together the concrete implementations used by the
// CLI commands.
func buildDependencies(cfg config.Config, logger *slog.Logger) (Dependencies, error) {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestBurst)
	}

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: &api.Transport{Limiter: limiter, Logger: logger},
	}

	client, err := api.New(cfg.APIBaseURL, api.Options{HTTPClient: httpClient, Logger: logger})
	if err != nil {
		return Dependencies{}, err
	}

	creds := credentials.NewFileStore(cfg.CredentialsPath, cfg.CredentialsKey)

	return Dependencies{
		Config:   cfg,
		API:      client,
		Session:  session.NewStore(client, creds, logger),
		Articles: articles.NewStore(client, logger),
	}, nil
}

// buildUploader selects the configured cover upload backend. It is built on
// demand so commands that never upload do not require gateway configuration.
func buildUploader(ctx context.Context, cfg config.Config) (upload.Gateway, error) {
	switch cfg.UploadBackend {
	case "s3":
		return upload.NewS3Gateway(ctx, cfg.ObjectStore)
	case "cloudinary":
		return upload.NewCloudinaryGateway(cfg.Cloudinary, &http.Client{Timeout: 2 * time.Minute})
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
