package networker

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"html-reader/internal/domain/data"
	"html-reader/internal/utils"

	"github.com/jimsmart/grobotstxt"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

type NetworkWorker struct {
	Logger        *zap.SugaredLogger
	transport     http.RoundTripper
	respectRobots bool
}

func NewNetworker(logger *zap.SugaredLogger, respectRobots bool) *NetworkWorker {
	return &NetworkWorker{
		Logger:        logger,
		transport:     otelhttp.NewTransport(http.DefaultTransport),
		respectRobots: respectRobots,
	}
}

func (repo *NetworkWorker) Fetch(ctx context.Context, request *data.FetchRequest) (*RawResponse, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, request.Timeout())
	defer cancel()

	if repo.respectRobots && !repo.isAllowedByRobots(fetchCtx, request) {
		repo.Logger.Warnw("Skipping url because of robots.txt", "url", request.URL)
		return nil, data.NewNetworkError("blocked by robots.txt: "+request.URL, nil)
	}

	rawResponse, err := repo.doGet(fetchCtx, request.URL, request)
	if err != nil {
		return nil, repo.classify(request, err)
	}

	if rawResponse.Status < 200 || rawResponse.Status >= 300 {
		repo.Logger.Warnw("Upstream returned non-success status", "url", request.URL, "status", rawResponse.Status)
		return rawResponse, data.NewHTTPError(rawResponse.Status, http.StatusText(rawResponse.Status))
	}

	return rawResponse, nil
}

func (repo *NetworkWorker) doGet(ctx context.Context, targetURL string, request *data.FetchRequest) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", request.Agent())
	req.Header.Set("Accept", acceptHeader)

	// The pooled transport is shared; the client value only carries the
	// per-request redirect policy.
	client := &http.Client{Transport: repo.transport}
	if !request.ShouldFollowRedirects() {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	repo.Logger.Infow("fetching url", "url", targetURL)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rawResponse := &RawResponse{
		Status:        resp.StatusCode,
		FinalURL:      resp.Request.URL.String(),
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		LastModified:  resp.Header.Get("Last-Modified"),
	}

	rawResponse.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if rawResponse.ContentType == "" && len(rawResponse.Body) > 0 {
		rawResponse.ContentType = http.DetectContentType(rawResponse.Body)
	}

	return rawResponse, nil
}

func (repo *NetworkWorker) classify(request *data.FetchRequest, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		repo.Logger.Warnw("Fetch timed out", "url", request.URL, "timeoutSeconds", request.TimeoutValue())
		return data.NewTimeoutError(request.TimeoutValue())
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		repo.Logger.Warnw("Fetch timed out", "url", request.URL, "timeoutSeconds", request.TimeoutValue())
		return data.NewTimeoutError(request.TimeoutValue())
	}

	repo.Logger.Errorw("Fetch failed", "url", request.URL, "err", err)
	return data.NewNetworkError(err.Error(), err)
}

// isAllowedByRobots fails open: an unreachable or missing robots.txt never
// blocks the fetch.
func (repo *NetworkWorker) isAllowedByRobots(ctx context.Context, request *data.FetchRequest) bool {
	baseURL, err := utils.GetBaseURL(request.URL)
	if err != nil {
		return true
	}

	robotsResponse, errFetch := repo.doGet(ctx, baseURL+"/robots.txt", request)
	if errFetch != nil {
		repo.Logger.Warnw("failed to fetch robots", "url", baseURL, "err", errFetch)
		return true
	}

	if robotsResponse.Status != http.StatusOK {
		return true
	}

	return grobotstxt.AgentAllowed(string(robotsResponse.Body), request.Agent(), request.URL)
}
