package contentreader

import (
	"context"
	"fmt"
	"mime"
	"net/url"

	"html-reader/internal/domain/config"
	"html-reader/internal/domain/data"
	"html-reader/internal/networker"
	"html-reader/internal/pageparser"

	"go.uber.org/zap"
)

type ReaderRepo struct {
	Logger    *zap.SugaredLogger
	Networker networker.Networker
	Parser    pageparser.PageParser
}

func NewReaderRepo(logger *zap.SugaredLogger, worker networker.Networker, parser pageparser.PageParser) *ReaderRepo {
	return &ReaderRepo{
		Logger:    logger,
		Networker: worker,
		Parser:    parser,
	}
}

func (repo *ReaderRepo) FetchWebContent(ctx context.Context, request *data.FetchRequest) (*data.FetchResult, error) {
	if err := repo.validateRequest(request); err != nil {
		repo.Logger.Warnw("Rejected fetch request", "url", request.URL, "err", err)
		return nil, err
	}

	rawResponse, errFetch := repo.Networker.Fetch(ctx, request)
	if errFetch != nil {
		repo.Logger.Warnw("Failed to fetch content", "url", request.URL, "err", errFetch)
		return nil, errFetch
	}

	// The parser runs even when raw HTML was requested, to obtain the title
	// and meta description.
	parsed, errParse := repo.Parser.Parse(string(rawResponse.Body))
	if errParse != nil {
		repo.Logger.Warnw("Failed to parse content", "url", request.URL, "err", errParse)
		return nil, errParse
	}

	result := &data.FetchResult{
		URL:             rawResponse.FinalURL,
		Title:           parsed.Title,
		MetaDescription: parsed.MetaDescription,
		Metadata:        buildMetadata(rawResponse),
	}

	if request.ShouldExtractTextOnly() {
		result.TextContent = parsed.Text
	} else {
		result.RawHTML = string(rawResponse.Body)
	}

	repo.Logger.Infow("Fetched content", "url", result.URL, "status", result.Metadata.StatusCode)

	return result, nil
}

// validateRequest fails fast, before any network activity.
func (repo *ReaderRepo) validateRequest(request *data.FetchRequest) error {
	if request.URL == "" {
		return data.NewInvalidURLError("URL cannot be empty")
	}

	parsed, err := url.Parse(request.URL)
	if err != nil {
		return data.NewInvalidURLError(err.Error())
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return data.NewInvalidURLError("URL must be absolute with http or https scheme")
	}

	if seconds := request.TimeoutValue(); seconds < config.MinTimeoutSeconds || seconds > config.MaxTimeoutSeconds {
		return data.NewInvalidURLError(fmt.Sprintf("timeout_seconds must be between %d and %d", config.MinTimeoutSeconds, config.MaxTimeoutSeconds))
	}

	return nil
}

func buildMetadata(rawResponse *networker.RawResponse) data.FetchMetadata {
	metadata := data.FetchMetadata{
		ContentType:  rawResponse.ContentType,
		StatusCode:   rawResponse.Status,
		LastModified: rawResponse.LastModified,
		Charset:      charsetFromContentType(rawResponse.ContentType),
	}

	if rawResponse.ContentLength >= 0 {
		length := rawResponse.ContentLength
		metadata.ContentLength = &length
	}

	return metadata
}

func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return params["charset"]
}
