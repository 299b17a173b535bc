package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"string-mcp/internal/stringdb"
)

// newTSVBridge wires a bridge to a backend answering every request with
// the given TSV body.
func newTSVBridge(t *testing.T, body string) *stringdb.Client {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(backend.Close)
	return stringdb.New(stringdb.Config{
		BaseURL:      backend.URL,
		VersionURL:   backend.URL,
		RequestDelay: -1,
	}, backend.Client())
}

func TestWriteRawTSV(t *testing.T) {
	body := "stringId\tpreferredName\n9606.ENSP00000269305\tTP53\n"
	bridge := newTSVBridge(t, body)

	var out bytes.Buffer
	err := writeRawTSV(context.Background(), &out, bridge, "get_string_ids", rawParams([]string{"TP53"}, 9606))
	require.NoError(t, err)
	assert.Equal(t, body, out.String())
}

func TestWriteRawTSVRaggedBody(t *testing.T) {
	bridge := newTSVBridge(t, "stringId\tpreferredName\n9606.ENSP00000269305\tTP53\textra\n")

	var out bytes.Buffer
	err := writeRawTSV(context.Background(), &out, bridge, "get_string_ids", rawParams([]string{"TP53"}, 9606))
	var perr *stringdb.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Zero(t, out.Len(), "nothing may be emitted for a malformed body")
}

func TestRawParams(t *testing.T) {
	params := rawParams([]string{"TP53", "MDM2"}, 9606)
	assert.Equal(t, url.Values{
		"identifiers": []string{"TP53\rMDM2"},
		"species":     []string{"9606"},
	}, params)
}
