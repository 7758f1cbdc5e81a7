package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/gestpornub/client-go/internal/model"
)

// StorageService covers blob upload and the two derived access URLs.
type StorageService struct {
	client *Client
}

// PreviewOptions are the transform parameters of a bounded preview URL.
type PreviewOptions struct {
	Width   int
	Height  int
	Gravity string
	Quality int
}

var errMissingFileID = errors.New("storage: file id is required")

// CreateFile uploads the asset under a fresh id and returns the stored file
// record. The payload streams through a multipart body; nothing is buffered
// beyond what the transport needs.
func (s *StorageService) CreateFile(ctx context.Context, bucketID string, asset *model.UploadAsset) (*model.File, error) {
	if asset == nil || asset.Data == nil {
		return nil, errors.New("storage: no asset to upload")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("fileId", UniqueID()); err != nil {
		return nil, fmt.Errorf("write file id field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(asset.Name)))
	if asset.MimeType != "" {
		header.Set("Content-Type", asset.MimeType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, asset.Data); err != nil {
		return nil, fmt.Errorf("copy asset: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	path := fmt.Sprintf("/storage/buckets/%s/files", bucketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.endpoint+path, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var file model.File
	if err := s.client.send(req, &file); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	return &file, nil
}

// FileViewURL derives the raw access URL of a stored blob: full quality, no
// transform. Pure derivation, no network round trip.
func (s *StorageService) FileViewURL(bucketID, fileID string) (string, error) {
	if fileID == "" {
		return "", errMissingFileID
	}
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?%s",
		s.client.endpoint, bucketID, fileID, s.accessParams().Encode()), nil
}

// FilePreviewURL derives a transformed preview URL bounded by opts. Pure
// derivation, no network round trip.
func (s *StorageService) FilePreviewURL(bucketID, fileID string, opts PreviewOptions) (string, error) {
	if fileID == "" {
		return "", errMissingFileID
	}

	params := s.accessParams()
	if opts.Width > 0 {
		params.Set("width", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		params.Set("height", strconv.Itoa(opts.Height))
	}
	if opts.Gravity != "" {
		params.Set("gravity", opts.Gravity)
	}
	if opts.Quality > 0 {
		params.Set("quality", strconv.Itoa(opts.Quality))
	}

	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/preview?%s",
		s.client.endpoint, bucketID, fileID, params.Encode()), nil
}

// accessParams carries the project id in derived URLs so media players can
// fetch them without the client's headers.
func (s *StorageService) accessParams() url.Values {
	return url.Values{"project": []string{s.client.projectID}}
}

func escapeQuotes(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return replacer.Replace(s)
}
