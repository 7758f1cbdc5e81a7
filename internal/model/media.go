package model

import "io"

// File kinds accepted by the upload and preview operations. Anything else is
// rejected client-side before a request is made.
const (
	KindImage = "image"
	KindVideo = "video"
)

// Image preview bounds applied to every image access URL.
const (
	PreviewMaxWidth  = 2000
	PreviewMaxHeight = 2000
	PreviewGravity   = "top"
	PreviewQuality   = 100
)

// UploadAsset is a file picked by the caller, streamed to the platform as-is.
// A nil *UploadAsset is treated by UploadFile as "nothing to do", not as an
// error.
type UploadAsset struct {
	Name     string
	MimeType string
	Size     int64
	Data     io.Reader
}

// File is the platform's record of a stored blob. Access goes through derived
// URLs (view or preview), never through the record itself.
type File struct {
	ID       string `json:"id"`
	BucketID string `json:"bucketId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}
