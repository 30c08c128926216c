package link

import (
	"fmt"
	"net/url"
	"strings"
)

// Style selects how the referral code is embedded into the shared link.
type Style string

const (
	// StyleQuery produces <base>/<signup path>?ref=<code>: the frontend
	// reads the parameter and reports the click itself.
	StyleQuery Style = "query"
	// StylePath produces <base>/r/<code>: the click lands on the tracker,
	// which records it and redirects.
	StylePath Style = "path"
)

var ErrUnknownStyle = fmt.Errorf("unknown link style")

type Builder struct {
	style      Style
	baseURL    string
	signupPath string
}

// NewBuilder validates the configured style once so handlers never have to.
func NewBuilder(style Style, baseURL, signupPath string) (*Builder, error) {
	switch style {
	case StyleQuery, StylePath:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	return &Builder{
		style:      style,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signupPath: strings.Trim(signupPath, "/"),
	}, nil
}

// Build embeds the code into the configured link template. The result is
// stored verbatim on the user record and never rebuilt.
func (b *Builder) Build(code string) string {
	if b.style == StylePath {
		return fmt.Sprintf("%s/r/%s", b.baseURL, url.PathEscape(code))
	}

	if b.signupPath == "" {
		return fmt.Sprintf("%s?ref=%s", b.baseURL, url.QueryEscape(code))
	}

	return fmt.Sprintf("%s/%s?ref=%s", b.baseURL, b.signupPath, url.QueryEscape(code))
}
