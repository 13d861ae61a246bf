package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed investor.md
var investorMarkdown []byte

var investorPolicy = newInvestorPolicy()

func newInvestorPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// investorBody converts the embedded investor copy from Markdown and
// sanitizes the result before it is marked as trusted template HTML.
func investorBody() (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(investorMarkdown, &buf); err != nil {
		return "", fmt.Errorf("render: convert investor copy: %w", err)
	}
	return template.HTML(investorPolicy.SanitizeBytes(buf.Bytes())), nil
}
