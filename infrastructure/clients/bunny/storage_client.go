package bunny

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cdn-service/domain/apperror"
	"cdn-service/domain/model"
	"cdn-service/domain/repository"
	"cdn-service/infrastructure/logger"
)

// StorageConfig configures the Bunny Storage client for one storage zone.
type StorageConfig struct {
	APIKey  string
	Zone    string
	Host    string // storage.bunnycdn.com or a regional host
	Timeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// StorageClient talks to the Bunny Storage REST API of a single zone.
type StorageClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewStorageClient creates a new Bunny Storage client
func NewStorageClient(config *StorageConfig) (repository.IObjectStorage, error) {
	if config.Zone == "" {
		return nil, fmt.Errorf("bunny storage zone is required")
	}
	if config.APIKey == "" {
		logger.GetLogger().WithField("zone", config.Zone).Warn("Bunny storage API key not set")
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &StorageClient{
		http:    client,
		baseURL: baseURL(config.Host) + "/" + config.Zone + "/",
		apiKey:  config.APIKey,
		timeout: timeout,
	}, nil
}

// PutFile uploads body to path, replacing any existing object.
func (c *StorageClient) PutFile(ctx context.Context, path string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := newRequest(ctx, http.MethodPut, c.baseURL+escapePath(path), c.apiKey, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	res, err := do(c.http, storageService, "put", req)
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

// DeleteFile removes the object at path.
func (c *StorageClient) DeleteFile(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := newRequest(ctx, http.MethodDelete, c.baseURL+escapePath(path), c.apiKey, nil)
	if err != nil {
		return err
	}
	res, err := do(c.http, storageService, "delete", req)
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

// ListObjects lists the objects directly under dir.
func (c *StorageClient) ListObjects(ctx context.Context, dir string) ([]model.StoredObject, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	req, err := newRequest(ctx, http.MethodGet, c.baseURL+escapePath(dir), c.apiKey, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := do(c.http, storageService, "list", req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	objects := make([]model.StoredObject, 0)
	if err := json.NewDecoder(res.Body).Decode(&objects); err != nil {
		return nil, &apperror.UpstreamError{Service: storageService, Op: "list", Err: fmt.Errorf("decode listing: %w", err)}
	}
	return objects, nil
}
