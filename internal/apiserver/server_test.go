package apiserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"html-reader/internal/domain/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	result      *data.FetchResult
	err         error
	lastRequest *data.FetchRequest
}

func (f *fakeReader) FetchWebContent(ctx context.Context, request *data.FetchRequest) (*data.FetchResult, error) {
	f.lastRequest = request
	return f.result, f.err
}

func doRequest(t *testing.T, reader *fakeReader, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := NewServer(zap.NewNop().Sugar(), reader).Router()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reqBody)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHealth(t *testing.T) {
	recorder := doRequest(t, &fakeReader{}, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "0.1.0", health.Version)
}

func TestFetchSuccessRoundTrip(t *testing.T) {
	length := int64(1024)
	expected := &data.FetchResult{
		URL:             "https://example.com",
		Title:           "Example",
		TextContent:     "Example Domain",
		MetaDescription: "An example page",
		Metadata: data.FetchMetadata{
			ContentType:   "text/html; charset=utf-8",
			StatusCode:    200,
			ContentLength: &length,
			LastModified:  "Mon, 01 Jan 2024 00:00:00 GMT",
			Charset:       "utf-8",
		},
	}
	reader := &fakeReader{result: expected}

	recorder := doRequest(t, reader, http.MethodPost, "/api/fetch", `{"url":"https://example.com","timeout_seconds":30}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got data.FetchResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, *expected, got)

	require.NotNil(t, reader.lastRequest)
	assert.Equal(t, "https://example.com", reader.lastRequest.URL)
	require.NotNil(t, reader.lastRequest.TimeoutSeconds)
	assert.Equal(t, 30, *reader.lastRequest.TimeoutSeconds)
}

func TestFetchPassesOptionalFields(t *testing.T) {
	reader := &fakeReader{result: &data.FetchResult{URL: "https://example.com"}}

	body := `{"url":"https://example.com","extract_text_only":false,"follow_redirects":false,"user_agent":"custom/1.0"}`
	recorder := doRequest(t, reader, http.MethodPost, "/api/fetch", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NotNil(t, reader.lastRequest.ExtractTextOnly)
	assert.False(t, *reader.lastRequest.ExtractTextOnly)
	require.NotNil(t, reader.lastRequest.FollowRedirects)
	assert.False(t, *reader.lastRequest.FollowRedirects)
	assert.Equal(t, "custom/1.0", reader.lastRequest.UserAgent)
}

func TestFetchInvalidJSONBody(t *testing.T) {
	recorder := doRequest(t, &fakeReader{}, http.MethodPost, "/api/fetch", `{not json`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_PARAMS", body.Error)
}

func TestFetchErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid url", data.NewInvalidURLError("URL cannot be empty"), http.StatusBadRequest, "INVALID_URL"},
		{"timeout", data.NewTimeoutError(30), http.StatusGatewayTimeout, "TIMEOUT"},
		{"network", data.NewNetworkError("connection refused", nil), http.StatusBadGateway, "NETWORK_ERROR"},
		{"http", data.NewHTTPError(404, "Not Found"), http.StatusBadGateway, "HTTP_ERROR"},
		{"parse", data.NewParseError("bad markup", nil), http.StatusBadGateway, "PARSE_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := doRequest(t, &fakeReader{err: tc.err}, http.MethodPost, "/api/fetch", `{"url":"https://example.com"}`)
			require.Equal(t, tc.wantStatus, recorder.Code)

			var body struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}
