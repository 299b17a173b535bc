package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"string-mcp/internal/stringdb"
)

// demoProteins is a small human protein set with a well-studied network,
// used by the demo subcommand.
var demoProteins = []string{"TP53", "MDM2", "EGFR", "BRCA1", "ATM"}

func runMap(bridge *stringdb.Client, args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: string-mcp map [flags] <identifiers...>\n\nMap protein identifiers to STRING IDs.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	species := fs.Int("species", 0, "NCBI taxonomy ID (e.g. 9606 for human)")
	output := fs.String("output", "json", "output format: json or tsv")
	echo := fs.Bool("echo-query", false, "repeat the query term in each result row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) == 0 {
		fs.Usage()
		return fmt.Errorf("at least one identifier is required")
	}

	ctx := context.Background()
	if *output == "tsv" {
		params := rawParams(ids, *species)
		if *echo {
			params.Set("echo_query", "1")
		}
		return printRaw(ctx, bridge, "get_string_ids", params)
	}
	data, err := bridge.MapIdentifiers(ctx, ids, stringdb.MapOptions{Species: *species, EchoQuery: *echo})
	if err != nil {
		return err
	}
	return printJSON(data)
}

func runNetwork(bridge *stringdb.Client, args []string) error {
	fs := flag.NewFlagSet("network", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: string-mcp network [flags] <identifiers...>\n\nFetch STRING interaction edges for a protein set.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	species := fs.Int("species", 0, "NCBI taxonomy ID (e.g. 9606 for human)")
	score := fs.Int("score", 0, "minimum combined score, 0-1000")
	addNodes := fs.Int("add-nodes", 0, "number of neighborhood proteins to add")
	netType := fs.String("type", "functional", "network type: functional or physical")
	output := fs.String("output", "json", "output format: json or tsv")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) == 0 {
		fs.Usage()
		return fmt.Errorf("at least one identifier is required")
	}

	ctx := context.Background()
	if *output == "tsv" {
		params := rawParams(ids, *species)
		params.Set("network_type", *netType)
		if *score > 0 {
			params.Set("required_score", strconv.Itoa(*score))
		}
		if *addNodes > 0 {
			params.Set("add_nodes", strconv.Itoa(*addNodes))
		}
		return printRaw(ctx, bridge, "network", params)
	}
	data, err := bridge.NetworkInteractions(ctx, ids, stringdb.NetworkOptions{
		Species:       *species,
		RequiredScore: *score,
		AddNodes:      *addNodes,
		NetworkType:   *netType,
	})
	if err != nil {
		return err
	}
	return printJSON(data)
}

func runImage(bridge *stringdb.Client, args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: string-mcp image [flags] <identifiers...>\n\nRender the interaction network to an image file.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	species := fs.Int("species", 0, "NCBI taxonomy ID (e.g. 9606 for human)")
	format := fs.String("format", "image", "picture format: image, highres_image or svg")
	outFile := fs.String("out", "", "output file (default string_network.png or .svg)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()

	f, err := stringdb.ParseFormat(*format)
	if err != nil {
		return err
	}
	body, err := bridge.NetworkImage(context.Background(), ids, f, stringdb.NetworkOptions{Species: *species})
	if err != nil {
		return err
	}

	path := *outFile
	if path == "" {
		if f == stringdb.FormatSVG {
			path = "string_network.svg"
		} else {
			path = "string_network.png"
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(body))
	return nil
}

// runDemo maps a sample human protein set, fetches its network and
// enrichment, and prints a short summary.
func runDemo(bridge *stringdb.Client, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: string-mcp demo\n\nMap a sample protein set and summarize its network.\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	const human = 9606

	fmt.Printf("Mapping %s ...\n", strings.Join(demoProteins, ", "))
	mapped, err := bridge.MapIdentifiers(ctx, demoProteins, stringdb.MapOptions{Species: human})
	if err != nil {
		return err
	}
	for _, m := range mapped {
		fmt.Printf("  %-8s -> %s\n", m.PreferredName, m.StringID)
	}

	edges, err := bridge.NetworkInteractions(ctx, demoProteins, stringdb.NetworkOptions{Species: human})
	if err != nil {
		return err
	}
	fmt.Printf("Network: %d interactions\n", len(edges))

	enriched, err := bridge.FunctionalEnrichment(ctx, demoProteins, stringdb.EnrichmentOptions{Species: human})
	if err != nil {
		return err
	}
	fmt.Printf("Enrichment: %d terms, top hits:\n", len(enriched))
	for i, rec := range enriched {
		if i == 5 {
			break
		}
		fmt.Printf("  [%s] %s (fdr %.2g)\n", rec.Category, rec.Description, rec.FDR)
	}
	return nil
}

func runVersion(bridge *stringdb.Client, args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	infos, err := bridge.Version(context.Background())
	if err != nil {
		return err
	}
	for _, v := range infos {
		fmt.Printf("STRING %s (%s)\n", v.StringVersion, v.StableAddress)
	}
	return nil
}

// rawParams builds the shared query parameters for Raw calls made by the
// tsv output path. Identifiers are joined with carriage returns, the
// separator the STRING API expects.
func rawParams(ids []string, species int) url.Values {
	params := url.Values{}
	params.Set("identifiers", strings.Join(ids, "\r"))
	if species > 0 {
		params.Set("species", strconv.Itoa(species))
	}
	return params
}

func printRaw(ctx context.Context, bridge *stringdb.Client, endpoint string, params url.Values) error {
	return writeRawTSV(ctx, os.Stdout, bridge, endpoint, params)
}

// writeRawTSV fetches the endpoint in TSV format and emits the API's own
// representation. The body is parsed first so a ragged response fails with
// a ParseError instead of being passed through.
func writeRawTSV(ctx context.Context, w io.Writer, bridge *stringdb.Client, endpoint string, params url.Values) error {
	body, err := bridge.Raw(ctx, endpoint, stringdb.FormatTSV, params)
	if err != nil {
		return err
	}
	if _, err := stringdb.ParseTSV(body); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func printJSON(data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
