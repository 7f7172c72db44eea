package message

import "github.com/microcosm-cc/bluemonday"

var htmlPolicy = bluemonday.UGCPolicy()

// cleanBody strips scripts, event handlers and other unsafe markup from HTML
// bodies. Plain text bodies are stored as written.
func cleanBody(body string, isHTML bool) string {
	if !isHTML {
		return body
	}
	return htmlPolicy.Sanitize(body)
}
