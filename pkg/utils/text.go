package utils

import (
	"html"
	"net/mail"
	"regexp"
	"strings"
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|head)\b[^>]*>.*?</(script|style|head)>`)
	blockTagRe    = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/tr|/li|/h[1-6]|/table)[^>]*>`)
	cellTagRe     = regexp.MustCompile(`(?i)<\s*/t[dh]\s*>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spaceRunRe    = regexp.MustCompile(`[ \t\f\v\p{Zs}]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	angleAddrRe   = regexp.MustCompile(`<([^<>\s]+@[^<>\s]+)>`)
)

// CleanHTMLText turns an HTML email body into plain text. Block-level tags
// become line breaks and table cells are separated by spaces so that
// "SEA</td><td>LAX" does not collapse into one token.
func CleanHTMLText(text string) string {
	cleaned := scriptStyleRe.ReplaceAllString(text, "")
	cleaned = blockTagRe.ReplaceAllString(cleaned, "\n")
	cleaned = cellTagRe.ReplaceAllString(cleaned, " ")
	cleaned = tagRe.ReplaceAllString(cleaned, "")

	// Replace HTML entities
	cleaned = html.UnescapeString(cleaned)

	// Clean up whitespace
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	cleaned = spaceRunRe.ReplaceAllString(cleaned, " ")
	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	cleaned = blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(cleaned)
}

// ExtractEmailAddress returns the bare, lowercased address from a From
// header such as `"Jane Doe" <Jane@Example.com>`. Without angle brackets
// the whole trimmed string is used.
func ExtractEmailAddress(from string) string {
	from = strings.TrimSpace(from)
	if addr, err := mail.ParseAddress(from); err == nil {
		return strings.ToLower(addr.Address)
	}
	if m := angleAddrRe.FindStringSubmatch(from); m != nil {
		return strings.ToLower(m[1])
	}
	return strings.ToLower(from)
}
