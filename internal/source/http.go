package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource fetches the workbook by its fixed file name relative to an origin.
// A failed request is final for that attempt.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSource(origin, fileName string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		url:        FileURL(origin, fileName),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FileURL joins origin and the path-escaped file name.
func FileURL(origin, fileName string) string {
	return strings.TrimRight(origin, "/") + "/" + url.PathEscape(fileName)
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable(s.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	return body, nil
}
