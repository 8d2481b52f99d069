package validate

import (
	"regexp"
	"slices"
	"strings"

	"github.com/supchaser/aria2bot/internal/utils/errs"
)

const (
	MaxTorrentSize = 1024 * 1024

	magnetPrefix = "magnet:?xt=urn:btih:"
)

var (
	magnetRe = regexp.MustCompile(`magnet:\?xt=urn:btih:((?:[0-9a-fA-F]{40})|(?:[a-zA-Z2-7]{32}))`)
	httpRe   = regexp.MustCompile(`((?:https|http)://[^\s]*)`)
	hexRe    = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	base32Re = regexp.MustCompile(`^[a-zA-Z2-7]{32}$`)
)

func ValidateTorrentSize(size int64) error {
	if size > MaxTorrentSize {
		return errs.ErrTorrentTooLarge
	}

	return nil
}

// ExtractMagnets returns the sorted, deduplicated magnet links found in
// text. A message made of a bare info hash counts as one magnet.
func ExtractMagnets(text string) []string {
	var magnets []string
	for _, match := range magnetRe.FindAllStringSubmatch(text, -1) {
		magnets = append(magnets, magnetPrefix+strings.ToLower(match[1]))
	}
	slices.Sort(magnets)
	magnets = slices.Compact(magnets)

	if hexRe.MatchString(text) || base32Re.MatchString(text) {
		magnets = append(magnets, magnetPrefix+text)
	}

	return magnets
}

// ExtractLinks returns the sorted, deduplicated http(s) links found in text.
func ExtractLinks(text string) []string {
	links := httpRe.FindAllString(text, -1)
	slices.Sort(links)
	return slices.Compact(links)
}
