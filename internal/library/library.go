// Package library builds the request bodies the alt-text library service
// accepts. It does not talk to the network; callers post the JSON however
// they like.
package library

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
)

// DefaultLanguage is used when a request leaves the language empty.
const DefaultLanguage = "en"

// SearchRequest is the body of an alt-library fetch.
type SearchRequest struct {
	Searches fingerprint.Fingerprint `json:"searches"`
	Language string                  `json:"language"`
}

// ReportRequest flags a library entry as wrong or abusive.
type ReportRequest struct {
	AuthorUUID string `json:"author_uuid"`
	SHA256     string `json:"sha256"`
	Language   string `json:"language"`
	Reason     string `json:"reason"`
}

// NewSearch builds a search for fp. The fingerprint must have been built
// with fingerprint.DefaultParams.
func NewSearch(fp fingerprint.Fingerprint, lang string) (SearchRequest, error) {
	if err := fp.Check(fingerprint.DefaultParams); err != nil {
		return SearchRequest{}, errors.Wrap(err, "search")
	}
	return SearchRequest{Searches: fp, Language: language(lang)}, nil
}

// NewReport builds a report against the entry stored under sha256.
func NewReport(authorUUID, sha256, lang, reason string) (ReportRequest, error) {
	r := ReportRequest{
		AuthorUUID: strings.TrimSpace(authorUUID),
		SHA256:     strings.ToLower(strings.TrimSpace(sha256)),
		Language:   language(lang),
		Reason:     strings.TrimSpace(reason),
	}
	switch {
	case r.AuthorUUID == "":
		return ReportRequest{}, errors.New("report: author uuid is required")
	case r.Reason == "":
		return ReportRequest{}, errors.New("report: reason is required")
	}
	probe := fingerprint.Fingerprint{SHA256: r.SHA256, DCT: make([]float64, fingerprint.DefaultParams.DescriptorLen())}
	if err := probe.Check(fingerprint.DefaultParams); err != nil {
		return ReportRequest{}, errors.Wrap(err, "report")
	}
	return r, nil
}

func language(lang string) string {
	if lang = strings.TrimSpace(lang); lang != "" {
		return lang
	}
	return DefaultLanguage
}
