package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"string-mcp/internal/stringdb"
)

// Handler executes one tool call against the bridge and returns the content
// blocks for the result.
type Handler func(ctx context.Context, args json.RawMessage) ([]mcp.Content, error)

// Tool pairs a tool descriptor with its handler. The same registry backs
// both the stdio MCP server and the HTTP tool surface.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

type mapArgs struct {
	Identifiers []string `json:"identifiers"`
	Species     int      `json:"species"`
	EchoQuery   bool     `json:"echo_query"`
}

type networkArgs struct {
	Identifiers   []string `json:"identifiers"`
	Species       int      `json:"species"`
	RequiredScore int      `json:"required_score"`
	AddNodes      int      `json:"add_nodes"`
	NetworkType   string   `json:"network_type"`
}

type partnersArgs struct {
	Identifiers   []string `json:"identifiers"`
	Species       int      `json:"species"`
	RequiredScore int      `json:"required_score"`
	Limit         int      `json:"limit"`
}

type enrichmentArgs struct {
	Identifiers           []string `json:"identifiers"`
	Species               int      `json:"species"`
	BackgroundIdentifiers []string `json:"background_identifiers"`
}

type ppiArgs struct {
	Identifiers   []string `json:"identifiers"`
	Species       int      `json:"species"`
	RequiredScore int      `json:"required_score"`
}

type imageArgs struct {
	Identifiers   []string `json:"identifiers"`
	Species       int      `json:"species"`
	RequiredScore int      `json:"required_score"`
	AddNodes      int      `json:"add_nodes"`
	NetworkType   string   `json:"network_type"`
	ImageFormat   string   `json:"image_format"`
}

// Tools returns the tool registry for the given bridge, in a fixed order.
// Registration is an explicit name-to-handler mapping built at process
// start; nothing is discovered at call time.
func Tools(bridge *stringdb.Client) []Tool {
	return []Tool{
		{
			Name:        "map_identifiers",
			Description: "Map protein identifiers (gene symbols or accessions) to canonical STRING IDs.",
			InputSchema: identifierSchema(`"echo_query":{"type":"boolean","description":"Repeat the query term in each result row."}`),
			Handler: func(ctx context.Context, raw json.RawMessage) ([]mcp.Content, error) {
				var a mapArgs
				if err := decodeArgs(raw, &a); err != nil {
					return nil, err
				}
				data, err := bridge.MapIdentifiers(ctx, a.Identifiers, stringdb.MapOptions{
					Species:   a.Species,
					EchoQuery: a.EchoQuery,
				})
				if err != nil {
					return nil, err
				}
				return textResult(data)
			},
		},
		{
			Name:        "get_network_interactions",
			Description: "Retrieve STRING interaction edges among a set of proteins.",
			InputSchema: identifierSchema(
				`"required_score":{"type":"integer","description":"Minimum combined score, 0-1000."}`,
				`"add_nodes":{"type":"integer","description":"Number of neighborhood proteins to add."}`,
				`"network_type":{"type":"string","enum":["functional","physical"]}`,
			),
			Handler: func(ctx context.Context, raw json.RawMessage) ([]mcp.Content, error) {
				var a networkArgs
				if err := decodeArgs(raw, &a); err != nil {
					return nil, err
				}
				data, err := bridge.NetworkInteractions(ctx, a.Identifiers, stringdb.NetworkOptions{
					Species:       a.Species,
					RequiredScore: a.RequiredScore,
					AddNodes:      a.AddNodes,
					NetworkType:   a.NetworkType,
				})
				if err != nil {
					return nil, err
				}
				return textResult(data)
			},
		},
		{
			Name:        "get_interaction_partners",
			Description: "Retrieve interaction partners of the query proteins across all of STRING.",
			InputSchema: identifierSchema(
				`"required_score":{"type":"integer","description":"Minimum combined score, 0-1000."}`,
				`"limit":{"type":"integer","description":"Maximum partners per query protein."}`,
			),
			Handler: func(ctx context.Context, raw json.RawMessage) ([]mcp.Content, error) {
				var a partnersArgs
				if err := decodeArgs(raw, &a); err != nil {
					return nil, err
				}
				data, err := bridge.InteractionPartners(ctx, a.Identifiers, stringdb.PartnersOptions{
					Species:       a.Species,
					RequiredScore: a.RequiredScore,
					Limit:         a.Limit,
				})
				if err != nil {
					return nil, err
				}
				return textResult(data)
			},
		},
		{
			Name:        "get_functional_enrichment",
			Description: "Perform GO / pathway enrichment analysis on a protein set.",
			InputSchema: identifierSchema(
				`"background_identifiers":{"type":"array","items":{"type":"string"},"description":"Optional background set of STRING identifiers."}`,
			),
			Handler: func(ctx context.Context, raw json.RawMessage) ([]mcp.Content, error) {
				var a enrichmentArgs
				if err := decodeArgs(raw, &a); err != nil {
					return nil, err
				}
				data, err := bridge.FunctionalEnrichment(ctx, a.Identifiers, stringdb.EnrichmentOptions{
					Species:    a.Species,
					Background: a.BackgroundIdentifiers,
				})
				if err != nil {
					return nil, err
				}
				return textResult(data)
			},
		},
		{
			Name:        "get_ppi_enrichment",
			Description: "Test whether a protein set is more connected than expected by chance.",
			InputSchema: identifierSchema(
				`"required_score":{"type":"integer","description":"Minimum combined score, 0-1000."}`,
			),
			Handler: func(ctx context.Context, raw json.RawMessage) ([]mcp.Content, error) {
				var a ppiArgs
				if err := decodeArgs(raw, &a); err != nil {
					return nil, err
				}
				data, err := bridge.PPIEnrichment(ctx, a.Identifiers, stringdb.PPIOptions{
					Species:       a.Species,
					RequiredScore: a.RequiredScore,
				})
				if err != nil {
					return nil, err
				}
				return textResult(data)
			},
		},
		{
			Name:        "get_network_image",
			Description: "Render the interaction network as an image (PNG or SVG).",
			InputSchema: identifierSchema(
				`"required_score":{"type":"integer","description":"Minimum combined score, 0-1000."}`,
				`"add_nodes":{"type":"integer","description":"Number of neighborhood proteins to add."}`,
				`"network_type":{"type":"string","enum":["functional","physical"]}`,
				`"image_format":{"type":"string","enum":["image","highres_image","svg"],"description":"Picture format, default image (PNG)."}`,
			),
			Handler: func(ctx context.Context, raw json.RawMessage) ([]mcp.Content, error) {
				var a imageArgs
				if err := decodeArgs(raw, &a); err != nil {
					return nil, err
				}
				format := stringdb.FormatImage
				if a.ImageFormat != "" {
					f, err := stringdb.ParseFormat(a.ImageFormat)
					if err != nil {
						return nil, err
					}
					format = f
				}
				body, err := bridge.NetworkImage(ctx, a.Identifiers, format, stringdb.NetworkOptions{
					Species:       a.Species,
					RequiredScore: a.RequiredScore,
					AddNodes:      a.AddNodes,
					NetworkType:   a.NetworkType,
				})
				if err != nil {
					return nil, err
				}
				if format.Binary() {
					return []mcp.Content{&mcp.ImageContent{Data: body, MIMEType: format.MIMEType()}}, nil
				}
				// SVG is XML text.
				return []mcp.Content{&mcp.TextContent{Text: string(body)}}, nil
			},
		},
		{
			Name:        "get_version_info",
			Description: "Return the current STRING database version.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
			Handler: func(ctx context.Context, _ json.RawMessage) ([]mcp.Content, error) {
				data, err := bridge.Version(ctx)
				if err != nil {
					return nil, err
				}
				return textResult(data)
			},
		},
	}
}

// identifierSchema builds an object schema with the mandatory identifiers
// array, the optional species field, and any extra property fragments.
func identifierSchema(extra ...string) json.RawMessage {
	props := `"identifiers":{"type":"array","items":{"type":"string"},"description":"Protein identifiers."},` +
		`"species":{"type":"integer","description":"NCBI taxonomy ID, e.g. 9606 for human."}`
	for _, e := range extra {
		props += "," + e
	}
	return json.RawMessage(`{"type":"object","properties":{` + props + `},"required":["identifiers"]}`)
}

func decodeArgs(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}

// textResult renders structured data as an indented JSON text block.
func textResult(data any) ([]mcp.Content, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return []mcp.Content{&mcp.TextContent{Text: string(out)}}, nil
}
