// Package sources reads dataset collection content from its origin: an
// uploaded file, a crawled link, an externally hosted file, or a third-party
// document API.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type SourceKind string

const (
	SourceStoredFile   SourceKind = "stored_file"
	SourceLink         SourceKind = "link"
	SourceExternalFile SourceKind = "external_file"
	SourceAPIFile      SourceKind = "api_file"
)

var (
	ErrNotFound      = errors.New("source content not found")
	ErrNoServer      = errors.New("api file source requires a server configuration")
	ErrUnknownSource = errors.New("unknown source kind")
)

// APIServer points at a third-party document API.
type APIServer struct {
	Kind    string `json:"kind"` // feishu, yuque or generic
	BaseURL string `json:"base_url"`
	Token   string `json:"token,omitempty"`
}

// Source identifies where a collection's raw content lives.
type Source struct {
	Kind      SourceKind `json:"kind"`
	FileID    string     `json:"file_id,omitempty"`
	URL       string     `json:"url,omitempty"`
	APIServer *APIServer `json:"api_server,omitempty"`
}

// Content is the raw material handed to the chunker.
type Content struct {
	Name string
	Data []byte
}

// FileStore resolves stored file ids to their content.
type FileStore interface {
	ReadFile(ctx context.Context, fileID string) (name string, data []byte, err error)
}

// Reader dispatches on the source kind and fetches the raw content.
type Reader struct {
	store  FileStore
	client *http.Client
	logger *slog.Logger
}

func NewReader(store FileStore, client *http.Client, logger *slog.Logger) *Reader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Reader{
		store:  store,
		client: client,
		logger: logger.With("module", "sources"),
	}
}

// Read fetches the content behind the source. Stored and external files keep
// their original name; link sources are named after their URL.
func (r *Reader) Read(ctx context.Context, src Source) (*Content, error) {
	switch src.Kind {
	case SourceStoredFile:
		return r.readStoredFile(ctx, src)
	case SourceLink:
		return r.readURL(ctx, src.URL, src.URL, nil)
	case SourceExternalFile:
		return r.readURL(ctx, src.URL, src.URL, nil)
	case SourceAPIFile:
		return r.readAPIFile(ctx, src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, src.Kind)
	}
}

func (r *Reader) readStoredFile(ctx context.Context, src Source) (*Content, error) {
	name, data, err := r.store.ReadFile(ctx, src.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored file %s: %w", src.FileID, err)
	}

	return &Content{Name: name, Data: data}, nil
}

func (r *Reader) readAPIFile(ctx context.Context, src Source) (*Content, error) {
	if src.APIServer == nil || src.APIServer.BaseURL == "" {
		return nil, ErrNoServer
	}

	var (
		url     string
		headers map[string]string
	)

	// Feishu and yuque use their own document endpoints; anything else is
	// treated as a generic file API.
	switch src.APIServer.Kind {
	case "feishu":
		url = src.APIServer.BaseURL + "/open-apis/docx/v1/documents/" + src.FileID + "/raw_content"
		headers = map[string]string{"Authorization": "Bearer " + src.APIServer.Token}
	case "yuque":
		url = src.APIServer.BaseURL + "/api/v2/docs/" + src.FileID
		headers = map[string]string{"X-Auth-Token": src.APIServer.Token}
	default:
		url = src.APIServer.BaseURL + "/v1/file/content?id=" + src.FileID

		headers = map[string]string{}
		if src.APIServer.Token != "" {
			headers["Authorization"] = "Bearer " + src.APIServer.Token
		}
	}

	return r.readURL(ctx, url, src.FileID, headers)
}

func (r *Reader) readURL(ctx context.Context, url, name string, headers map[string]string) (*Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			r.logger.Warn("Failed to close response body", "url", url, "error", err)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body from %s: %w", url, err)
	}

	return &Content{Name: name, Data: data}, nil
}
