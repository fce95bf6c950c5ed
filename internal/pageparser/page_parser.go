package pageparser

type ParsedContent struct {
	Title           string
	MetaDescription string
	Text            string
}

type PageParser interface {
	Parse(rawHTML string) (*ParsedContent, error)
}

// Elements whose text is never user-visible.
var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}
