package apiserver

import (
	"encoding/json"
	"net/http"

	"html-reader/internal/contentreader"
	"html-reader/internal/domain/config"
	"html-reader/internal/domain/data"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type healthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Server struct {
	Logger *zap.SugaredLogger
	Reader contentreader.ContentReader
}

func NewServer(logger *zap.SugaredLogger, reader contentreader.ContentReader) *Server {
	return &Server{
		Logger: logger,
		Reader: reader,
	}
}

func (srv *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.AllowAll().Handler)

	router.Get("/health", srv.handleHealth)
	router.Post("/api/fetch", srv.handleFetch)

	return otelhttp.NewHandler(router, "html-reader-api")
}

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	srv.writeJSON(w, http.StatusOK, healthBody{Status: "healthy", Version: config.Version})
}

func (srv *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	var request data.FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		srv.writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_PARAMS", Message: "invalid JSON body: " + err.Error()})
		return
	}

	result, err := srv.Reader.FetchWebContent(r.Context(), &request)
	if err != nil {
		status, body := mapError(err)
		srv.Logger.Warnw("Fetch request failed", "url", request.URL, "code", body.Error, "err", err)
		srv.writeJSON(w, status, body)
		return
	}

	srv.writeJSON(w, http.StatusOK, result)
}

func mapError(err error) (int, errorBody) {
	fetchErr, ok := data.AsFetchError(err)
	if !ok {
		return http.StatusInternalServerError, errorBody{Error: "FETCH_ERROR", Message: err.Error()}
	}

	switch fetchErr.Kind {
	case data.ErrKindInvalidURL:
		return http.StatusBadRequest, errorBody{Error: "INVALID_URL", Message: fetchErr.Message}
	case data.ErrKindTimeout:
		return http.StatusGatewayTimeout, errorBody{Error: "TIMEOUT", Message: fetchErr.Error()}
	case data.ErrKindHTTP:
		return http.StatusBadGateway, errorBody{Error: "HTTP_ERROR", Message: fetchErr.Error()}
	case data.ErrKindParse:
		return http.StatusBadGateway, errorBody{Error: "PARSE_ERROR", Message: fetchErr.Error()}
	default:
		return http.StatusBadGateway, errorBody{Error: "NETWORK_ERROR", Message: fetchErr.Error()}
	}
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		srv.Logger.Errorw("Failed to write response", "err", err)
	}
}
