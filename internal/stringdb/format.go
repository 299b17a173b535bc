package stringdb

import "fmt"

// OutputFormat selects the response representation requested from the
// STRING API. The format is part of the URL path, not a query parameter.
type OutputFormat string

const (
	FormatTSV          OutputFormat = "tsv"
	FormatTSVNoHeader  OutputFormat = "tsv-no-header"
	FormatJSON         OutputFormat = "json"
	FormatXML          OutputFormat = "xml"
	FormatImage        OutputFormat = "image"
	FormatHighresImage OutputFormat = "highres_image"
	FormatSVG          OutputFormat = "svg"
	FormatPSIMI        OutputFormat = "psi-mi"
	FormatPSIMITab     OutputFormat = "psi-mi-tab"
)

var knownFormats = map[OutputFormat]bool{
	FormatTSV:          true,
	FormatTSVNoHeader:  true,
	FormatJSON:         true,
	FormatXML:          true,
	FormatImage:        true,
	FormatHighresImage: true,
	FormatSVG:          true,
	FormatPSIMI:        true,
	FormatPSIMITab:     true,
}

// ParseFormat converts a user-supplied string into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if !knownFormats[f] {
		return "", &ValidationError{Field: "output format", Reason: fmt.Sprintf("unknown format %q", s)}
	}
	return f, nil
}

func (f OutputFormat) String() string { return string(f) }

// IsImage reports whether the format selects a rendered network picture.
func (f OutputFormat) IsImage() bool {
	return f == FormatImage || f == FormatHighresImage || f == FormatSVG
}

// Binary reports whether the response body is raw bytes rather than text.
// SVG is XML text and is not binary.
func (f OutputFormat) Binary() bool {
	return f == FormatImage || f == FormatHighresImage
}

// MIMEType returns the content type of a response in this format.
func (f OutputFormat) MIMEType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatImage, FormatHighresImage:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatXML, FormatPSIMI:
		return "text/xml"
	default:
		return "text/plain"
	}
}
