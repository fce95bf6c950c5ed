package data

import (
	"time"

	"html-reader/internal/domain/config"
)

// FetchRequest is the wire shape shared by both transports. Optional fields
// are pointers so an absent value is distinguishable from an explicit
// false/zero; the accessor methods resolve defaults.
type FetchRequest struct {
	URL             string `json:"url"`
	ExtractTextOnly *bool  `json:"extract_text_only,omitempty"`
	FollowRedirects *bool  `json:"follow_redirects,omitempty"`
	TimeoutSeconds  *int   `json:"timeout_seconds,omitempty"`
	UserAgent       string `json:"user_agent,omitempty"`
}

func (r *FetchRequest) ShouldExtractTextOnly() bool {
	if r.ExtractTextOnly == nil {
		return config.DefaultExtractTextOnly
	}
	return *r.ExtractTextOnly
}

func (r *FetchRequest) ShouldFollowRedirects() bool {
	if r.FollowRedirects == nil {
		return config.DefaultFollowRedirects
	}
	return *r.FollowRedirects
}

func (r *FetchRequest) TimeoutValue() int {
	if r.TimeoutSeconds == nil {
		return config.DefaultTimeoutSeconds
	}
	return *r.TimeoutSeconds
}

func (r *FetchRequest) Timeout() time.Duration {
	return time.Duration(r.TimeoutValue()) * time.Second
}

func (r *FetchRequest) Agent() string {
	if r.UserAgent == "" {
		return config.DefaultUserAgent
	}
	return r.UserAgent
}

type FetchMetadata struct {
	ContentType   string `json:"content_type,omitempty"`
	StatusCode    int    `json:"status_code"`
	ContentLength *int64 `json:"content_length,omitempty"`
	LastModified  string `json:"last_modified,omitempty"`
	Charset       string `json:"charset,omitempty"`
}

// FetchResult carries either the extracted text or the raw document, never
// both: RawHTML is set only when extract_text_only was false.
type FetchResult struct {
	URL             string        `json:"url"`
	Title           string        `json:"title,omitempty"`
	TextContent     string        `json:"text_content,omitempty"`
	RawHTML         string        `json:"raw_html,omitempty"`
	MetaDescription string        `json:"meta_description,omitempty"`
	Metadata        FetchMetadata `json:"metadata"`
}
