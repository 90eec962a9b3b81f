package newsdigest

import (
	"net/url"
	"strings"
)

// ResolveLink resolves href against base. It returns nil if href is empty
// or cannot be parsed; malformed links never abort extraction.
func ResolveLink(base *url.URL, href string) *string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return OptionalString(base.ResolveReference(ref).String())
}
