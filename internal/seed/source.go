package seed

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/tradui/internal/platform"
)

//go:embed xmldata/*.xml
var bundled embed.FS

// Source supplies seed documents by file name.
type Source interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	String() string
}

// FSSource reads seed files from a file system.
type FSSource struct {
	FS    fs.FS
	Label string
}

// Embedded returns the data set compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(bundled, "xmldata")
	if err != nil {
		panic(fmt.Sprintf("embedded seed data: %v", err))
	}
	return &FSSource{FS: sub, Label: "embedded"}
}

// Dir returns a source reading from a directory on disk.
func Dir(path string) *FSSource {
	return &FSSource{FS: os.DirFS(path), Label: path}
}

func (s *FSSource) ReadFile(_ context.Context, name string) ([]byte, error) {
	data, err := fs.ReadFile(s.FS, name)
	if err != nil {
		return nil, &platform.FatalUserError{
			Op:      "seed",
			Message: fmt.Sprintf("cannot read seed file %s from %s", name, s.Label),
			Err:     err,
		}
	}
	return data, nil
}

func (s *FSSource) String() string {
	return s.Label
}

// HTTPSource fetches seed files from a remote server.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	reqURL := s.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &platform.FatalUserError{
			Op:      "seed",
			Message: fmt.Sprintf("seed file %s not found at %s", name, s.baseURL),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d fetching %s", resp.StatusCode, reqURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", reqURL, err)
	}
	return data, nil
}

func (s *HTTPSource) String() string {
	return s.baseURL
}
