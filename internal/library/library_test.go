package library

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
)

var digest = strings.Repeat("ab", 32)

func TestNewSearch(t *testing.T) {
	fp := fingerprint.Fingerprint{SHA256: digest, DCT: make([]float64, 64)}
	req, err := NewSearch(fp, "")
	require.NoError(t, err)
	assert.Equal(t, "en", req.Language)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2)
	assert.JSONEq(t, `"en"`, string(raw["language"]))

	fpJSON, err := json.Marshal(fp)
	require.NoError(t, err)
	assert.JSONEq(t, string(fpJSON), string(raw["searches"]))
}

func TestNewSearchRejectsForeignParams(t *testing.T) {
	fp := fingerprint.Fingerprint{SHA256: digest, DCT: make([]float64, 256)}
	_, err := NewSearch(fp, "de")
	assert.Error(t, err)
}

func TestNewReport(t *testing.T) {
	r, err := NewReport(" 1234 ", strings.ToUpper(digest), "fr", "wrong animal")
	require.NoError(t, err)
	assert.Equal(t, ReportRequest{AuthorUUID: "1234", SHA256: digest, Language: "fr", Reason: "wrong animal"}, r)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"author_uuid":"1234","sha256":"`+digest+`","language":"fr","reason":"wrong animal"}`, string(data))
}

func TestNewReportValidation(t *testing.T) {
	_, err := NewReport("", digest, "", "x")
	assert.ErrorContains(t, err, "author")
	_, err = NewReport("u", digest, "", " ")
	assert.ErrorContains(t, err, "reason")
	_, err = NewReport("u", "xyz", "", "r")
	assert.ErrorContains(t, err, "sha256")
}
