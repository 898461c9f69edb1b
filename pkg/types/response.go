// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionMetadata accompanies a successful conversion.
type ConversionMetadata struct {
	// Title is the document title when the engine reports one; null
	// in the JSON body otherwise.
	Title *string `json:"title"`

	// ContentLength is the character length of the Markdown output.
	ContentLength int `json:"content_length"`
}

// ConversionResponse is the JSON body returned by POST /convert on success.
type ConversionResponse struct {
	Success  bool               `json:"success"`
	Filename string             `json:"filename"`
	FileSize int                `json:"file_size"`
	Markdown string             `json:"markdown"`
	Metadata ConversionMetadata `json:"metadata"`
}

// ServiceInfo is the JSON body returned by GET /.
type ServiceInfo struct {
	Message          string   `json:"message"`
	Description      string   `json:"description"`
	Version          string   `json:"version"`
	SupportedFormats []string `json:"supported_formats"`
}

// HealthStatus is the JSON body returned by GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is the JSON body returned on any request failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
