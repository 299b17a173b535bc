// Package stringdb provides a minimal client for the STRING
// protein-interaction database REST API with polite client-side
// rate limiting.
package stringdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// pngSignature is the fixed 8-byte header every PNG file starts with.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Client is a thin HTTP client for the STRING API. Each operation issues
// exactly one outbound GET, preceded by the configured delay. The client
// holds no mutable state and is safe for concurrent use.
type Client struct {
	cfg   Config
	HTTP  *http.Client
	sleep func(time.Duration)
}

// New returns a new client. Zero Config fields are filled with defaults;
// if httpClient is nil, a default with 30s timeout is used.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg.withDefaults(), HTTP: httpClient, sleep: time.Sleep}
}

// Config returns the client's immutable configuration.
func (c *Client) Config() Config { return c.cfg }

// MapOptions are the optional parameters for MapIdentifiers.
type MapOptions struct {
	Species   int
	EchoQuery bool
}

// MapIdentifiers resolves gene symbols or accessions to canonical STRING
// IDs via the get_string_ids endpoint. The result has at most one entry
// per input token; unresolvable tokens are absent.
func (c *Client) MapIdentifiers(ctx context.Context, identifiers []string, opts MapOptions) ([]MappedIdentifier, error) {
	if err := validateIdentifiers(identifiers); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("identifiers", joinIdentifiers(identifiers))
	if opts.EchoQuery {
		params.Set("echo_query", "1")
	}
	setSpecies(params, opts.Species)

	body, err := c.get(ctx, "get_string_ids", FormatJSON, params, false)
	if err != nil {
		return nil, err
	}
	return decodeList[MappedIdentifier](body)
}

// NetworkOptions are the optional parameters for NetworkInteractions
// and NetworkImage.
type NetworkOptions struct {
	Species       int
	RequiredScore int    // 0..1000, zero means server default
	AddNodes      int    // extra neighborhood proteins to pull in
	NetworkType   string // "functional" (default) or "physical"
}

// NetworkInteractions fetches the interaction edges among the given
// proteins from the network endpoint.
func (c *Client) NetworkInteractions(ctx context.Context, identifiers []string, opts NetworkOptions) ([]Interaction, error) {
	if err := validateIdentifiers(identifiers); err != nil {
		return nil, err
	}
	params, err := networkParams(identifiers, opts)
	if err != nil {
		return nil, err
	}
	params.Set("show_query_node_labels", "0")

	body, err := c.get(ctx, "network", FormatJSON, params, false)
	if err != nil {
		return nil, err
	}
	return decodeList[Interaction](body)
}

// PartnersOptions are the optional parameters for InteractionPartners.
type PartnersOptions struct {
	Species       int
	RequiredScore int
	Limit         int // max partners per query protein, zero means server default
}

// InteractionPartners fetches edges between the query proteins and all
// other STRING proteins, ranked by score.
func (c *Client) InteractionPartners(ctx context.Context, identifiers []string, opts PartnersOptions) ([]Interaction, error) {
	if err := validateIdentifiers(identifiers); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("identifiers", joinIdentifiers(identifiers))
	setSpecies(params, opts.Species)
	if opts.RequiredScore > 0 {
		params.Set("required_score", strconv.Itoa(opts.RequiredScore))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.get(ctx, "interaction_partners", FormatJSON, params, false)
	if err != nil {
		return nil, err
	}
	return decodeList[Interaction](body)
}

// EnrichmentOptions are the optional parameters for FunctionalEnrichment.
type EnrichmentOptions struct {
	Species    int
	Background []string // optional background STRING identifiers
}

// FunctionalEnrichment runs GO / pathway over-representation analysis on
// the protein set via the enrichment endpoint.
func (c *Client) FunctionalEnrichment(ctx context.Context, identifiers []string, opts EnrichmentOptions) ([]EnrichmentRecord, error) {
	if err := validateIdentifiers(identifiers); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("identifiers", joinIdentifiers(identifiers))
	setSpecies(params, opts.Species)
	if len(opts.Background) > 0 {
		params.Set("background_string_identifiers", joinIdentifiers(opts.Background))
	}

	body, err := c.get(ctx, "enrichment", FormatJSON, params, false)
	if err != nil {
		return nil, err
	}
	return decodeList[EnrichmentRecord](body)
}

// PPIOptions are the optional parameters for PPIEnrichment.
type PPIOptions struct {
	Species       int
	RequiredScore int
}

// PPIEnrichment tests whether the protein set has more interactions among
// its members than expected by chance.
func (c *Client) PPIEnrichment(ctx context.Context, identifiers []string, opts PPIOptions) ([]PPIEnrichmentRecord, error) {
	if err := validateIdentifiers(identifiers); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("identifiers", joinIdentifiers(identifiers))
	setSpecies(params, opts.Species)
	if opts.RequiredScore > 0 {
		params.Set("required_score", strconv.Itoa(opts.RequiredScore))
	}

	body, err := c.get(ctx, "ppi_enrichment", FormatJSON, params, false)
	if err != nil {
		return nil, err
	}
	return decodeList[PPIEnrichmentRecord](body)
}

// NetworkImage renders the interaction network as a picture. The format
// must be one of image, highres_image, or svg. PNG responses are checked
// for the PNG file signature.
func (c *Client) NetworkImage(ctx context.Context, identifiers []string, format OutputFormat, opts NetworkOptions) ([]byte, error) {
	if err := validateIdentifiers(identifiers); err != nil {
		return nil, err
	}
	if !format.IsImage() {
		return nil, &ValidationError{Field: "format", Reason: fmt.Sprintf("%q is not an image format", format)}
	}
	params, err := networkParams(identifiers, opts)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "network", format, params, false)
	if err != nil {
		return nil, err
	}
	if format.Binary() && !bytes.HasPrefix(body, pngSignature) {
		return nil, &ParseError{Format: format, Reason: "body does not start with a PNG signature"}
	}
	return body, nil
}

// Version reports the STRING database release served by the API. Unlike
// the data endpoints it targets the version-pinned URL.
func (c *Client) Version(ctx context.Context) ([]VersionInfo, error) {
	body, err := c.get(ctx, "version", FormatJSON, nil, true)
	if err != nil {
		return nil, err
	}
	infos, err := decodeList[VersionInfo](body)
	if err == nil {
		return infos, nil
	}
	// Some deployments answer with a single object instead of a list.
	var one VersionInfo
	if uerr := json.Unmarshal(body, &one); uerr == nil {
		return []VersionInfo{one}, nil
	}
	return nil, err
}

// Raw issues a request for the given endpoint and format and returns the
// response body unparsed. It is the escape hatch for TSV, XML and PSI-MI
// output where the caller wants the API's own representation.
func (c *Client) Raw(ctx context.Context, endpoint string, format OutputFormat, params url.Values) ([]byte, error) {
	if endpoint == "" {
		return nil, &ValidationError{Field: "endpoint", Reason: "cannot be empty"}
	}
	if !knownFormats[format] {
		return nil, &ValidationError{Field: "output format", Reason: fmt.Sprintf("unknown format %q", format)}
	}
	return c.get(ctx, endpoint, format, params, false)
}

// get performs one throttled GET against {base}/{format}/{endpoint} and
// returns the body, converting transport failures and non-2xx statuses
// into RemoteError.
func (c *Client) get(ctx context.Context, endpoint string, format OutputFormat, params url.Values, useVersionURL bool) ([]byte, error) {
	base := c.cfg.BaseURL
	if useVersionURL {
		base = c.cfg.VersionURL
	}
	if params == nil {
		params = url.Values{}
	}
	if params.Get("caller_identity") == "" {
		params.Set("caller_identity", c.cfg.CallerIdentity)
	}
	reqURL := fmt.Sprintf("%s/%s/%s?%s", strings.TrimRight(base, "/"), format, endpoint, params.Encode())

	if c.cfg.RequestDelay > 0 {
		c.sleep(c.cfg.RequestDelay)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ValidationError{Field: "base url", Reason: err.Error()}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &RemoteError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Status: resp.Status, Body: snippet(body)}
	}
	return body, nil
}

// networkParams builds the shared query parameters for the network data
// and image endpoints, validating the network type locally.
func networkParams(identifiers []string, opts NetworkOptions) (url.Values, error) {
	switch opts.NetworkType {
	case "", "functional", "physical":
	default:
		return nil, &ValidationError{Field: "network_type", Reason: fmt.Sprintf("must be functional or physical, got %q", opts.NetworkType)}
	}
	params := url.Values{}
	params.Set("identifiers", joinIdentifiers(identifiers))
	if opts.NetworkType != "" {
		params.Set("network_type", opts.NetworkType)
	}
	setSpecies(params, opts.Species)
	if opts.RequiredScore > 0 {
		params.Set("required_score", strconv.Itoa(opts.RequiredScore))
	}
	if opts.AddNodes > 0 {
		params.Set("add_nodes", strconv.Itoa(opts.AddNodes))
	}
	return params, nil
}

func validateIdentifiers(identifiers []string) error {
	if len(identifiers) == 0 {
		return &ValidationError{Field: "identifiers", Reason: "list cannot be empty"}
	}
	for i, id := range identifiers {
		if strings.TrimSpace(id) == "" {
			return &ValidationError{Field: "identifiers", Reason: fmt.Sprintf("entry %d is blank", i)}
		}
	}
	return nil
}

// joinIdentifiers joins tokens with carriage returns, the separator the
// STRING API expects for multi-protein queries.
func joinIdentifiers(identifiers []string) string {
	return strings.Join(identifiers, "\r")
}

func setSpecies(params url.Values, species int) {
	if species > 0 {
		params.Set("species", strconv.Itoa(species))
	}
}

// decodeList unmarshals a JSON array body, converting failures into
// ParseError.
func decodeList[T any](body []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ParseError{Format: FormatJSON, Reason: "expected a JSON array", Err: err}
	}
	return out, nil
}

// snippet truncates a response body for inclusion in error messages,
// cutting at a rune boundary so multi-byte characters stay intact.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
