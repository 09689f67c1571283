package dto

import "encoding/json"

// ResearchRequest is the intake body. Role is the only required field.
type ResearchRequest struct {
	Role         string             `json:"role"`
	Tasks        map[string]float64 `json:"tasks"`
	Resume       string             `json:"resume"`
	LinkedInURL  string             `json:"linkedinUrl"`
	ProfileData  json.RawMessage    `json:"profileData"`
	UploadedFile *UploadedFile      `json:"uploadedFile"`
}

// UploadedFile is a client-decoded file descriptor. Binary formats are not
// parsed server-side; anything that is not plain text goes through the
// lossy document-inference call instead.
type UploadedFile struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// AnalyzeRequest drives the synchronous analyze endpoint.
type AnalyzeRequest struct {
	ProfileID string          `json:"profile_id"`
	Evidence  json.RawMessage `json:"evidence"`
}
