package handler

import "gpcaffidavit/internal/session"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ExtractTextRequest carries text already read from a GPC.
type ExtractTextRequest struct {
	Text     string `json:"text" example:"REGISTRY AT: PERTH ... Case number: GCLM/2763/2024"`
	FileName string `json:"filename" example:"GCLM-2763-2024.pdf"`
}

// BatchSummary is the JSON form of a processed batch.
type BatchSummary struct {
	ID        string         `json:"id" example:"5f0c1a8e-8a57-4f5e-9a43-0d2d0c6f1c11"`
	Counts    session.Counts `json:"counts"`
	Items     []session.Item `json:"items"`
	BundleURL string         `json:"bundleUrl,omitempty"`
}
