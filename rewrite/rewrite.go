package rewrite

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// ErrNotModified can be returned by a URLRewriter to leave a URL as-is.
// Returning it is faster than returning the input unchanged, since callers
// skip re-encoding the surrounding syntax (quoting, CSS escaping).
var ErrNotModified = errors.New("not modified")

// URLRewriter rewrites one URL string found in a document and returns its
// replacement, or ErrNotModified to leave it untouched.
type URLRewriter func(rawURL string) (string, error)

// IsSupportedMediaType returns whether the given media type (as returned from mime.ParseMediaType) is supported.
func IsSupportedMediaType(mediaType string, params map[string]string) bool {
	if mediaType != "text/html" && mediaType != "text/css" {
		return false
	}
	return params["charset"] == "" || strings.EqualFold(params["charset"], "utf-8")
}

// Document rewrites whole document by given MIME media type.
func Document(mediaType string, mediaParams map[string]string, input *parse.Input, w io.Writer,
	urlRewriter URLRewriter) error {
	if !IsSupportedMediaType(mediaType, mediaParams) {
		return fmt.Errorf("unsupported media type: %s %v", mediaType, mediaParams)
	}

	switch mediaType {
	case "text/html":
		return HTML5(input, w, urlRewriter)
	case "text/css":
		return CSS(input, w, urlRewriter, false)
	default:
		return fmt.Errorf("unsupported media type: %s %v", mediaType, mediaParams)
	}
}
