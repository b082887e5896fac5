package dto

import "time"

// ImportResultResponse resultado de una importación de stock WB.
type ImportResultResponse struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
	Summary    string    `json:"summary"`
	Processed  int       `json:"processed"`
	WithErrors int       `json:"with_errors"`
	UploadedAt time.Time `json:"uploaded_at"`
}
