package server

import "encoding/json"

// Tool describes an exposed tool and its input schema.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// CallRequest is the body of a POST /mcp/call.
type CallRequest struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments"`
}

// ContentBlock is one element of a call result: text, or base64 image data.
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

// CallResponse is the body of a POST /mcp/call response.
type CallResponse struct {
	IsError bool           `json:"isError"`
	Content []ContentBlock `json:"content"`
}
