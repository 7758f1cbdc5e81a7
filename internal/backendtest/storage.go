package backendtest

import (
	"bytes"
	"hash/fnv"
	"image/color"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/gestpornub/client-go/internal/httputil"
	"github.com/gestpornub/client-go/internal/model"
)

const maxUploadBytes = 64 << 20

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	bucketID := chi.URLParam(r, "bucketID")

	s.mu.Lock()
	fail := s.failUploads
	s.mu.Unlock()
	if fail {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "upload rejected")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "invalid multipart body")
		return
	}

	fileID := r.FormValue("fileId")
	if fileID == "" {
		fileID = newID()
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "file part is required")
		return
	}
	defer part.Close()

	data, err := io.ReadAll(io.LimitReader(part, maxUploadBytes))
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "failed to read upload")
		return
	}

	record := &fileRecord{
		ID:       fileID,
		BucketID: bucketID,
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}

	s.mu.Lock()
	s.files[bucketID+"/"+fileID] = record
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, model.File{
		ID:       record.ID,
		BucketID: record.BucketID,
		Name:     record.Name,
		MimeType: record.MimeType,
		Size:     int64(len(record.Data)),
	})
}

func (s *Server) handleFileView(w http.ResponseWriter, r *http.Request) {
	record := s.lookupFile(chi.URLParam(r, "bucketID"), chi.URLParam(r, "fileID"))
	if record == nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.TypeNotFound, "file not found")
		return
	}

	if record.MimeType != "" {
		w.Header().Set("Content-Type", record.MimeType)
	}
	_, _ = w.Write(record.Data)
}

// handleFilePreview serves a transformed rendition of a stored image,
// honoring the width/height bounds, crop gravity, and JPEG quality the URL
// asks for.
func (s *Server) handleFilePreview(w http.ResponseWriter, r *http.Request) {
	record := s.lookupFile(chi.URLParam(r, "bucketID"), chi.URLParam(r, "fileID"))
	if record == nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.TypeNotFound, "file not found")
		return
	}
	if !strings.HasPrefix(record.MimeType, "image/") {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "previews are only available for images")
		return
	}

	img, err := imaging.Decode(bytes.NewReader(record.Data))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "stored file is not a decodable image")
		return
	}

	width := queryInt(r, "width", img.Bounds().Dx())
	height := queryInt(r, "height", img.Bounds().Dy())
	quality := queryInt(r, "quality", 100)

	// Never upscale; the bounds are maxima.
	if width > img.Bounds().Dx() {
		width = img.Bounds().Dx()
	}
	if height > img.Bounds().Dy() {
		height = img.Bounds().Dy()
	}

	resized := imaging.Fill(img, width, height, anchorFor(r.URL.Query().Get("gravity")), imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "failed to encode preview")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(buf.Bytes())
}

// handleAvatarInitials renders a deterministic placeholder avatar: a solid
// color derived from the name, standing in for the production initials
// rendering.
func (s *Server) handleAvatarInitials(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	size := queryInt(r, "width", 100)

	img := imaging.New(size, size, avatarColor(name))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "failed to encode avatar")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) lookupFile(bucketID, fileID string) *fileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[bucketID+"/"+fileID]
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func anchorFor(gravity string) imaging.Anchor {
	switch gravity {
	case "top":
		return imaging.Top
	case "bottom":
		return imaging.Bottom
	case "left":
		return imaging.Left
	case "right":
		return imaging.Right
	default:
		return imaging.Center
	}
}

var avatarPalette = []color.NRGBA{
	{R: 0xE6, G: 0x3B, B: 0x60, A: 0xFF},
	{R: 0x3B, G: 0x82, B: 0xE6, A: 0xFF},
	{R: 0x2F, G: 0xB3, B: 0x6D, A: 0xFF},
	{R: 0xE6, G: 0x9A, B: 0x3B, A: 0xFF},
	{R: 0x8E, G: 0x3B, B: 0xE6, A: 0xFF},
}

func avatarColor(name string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return avatarPalette[int(h.Sum32())%len(avatarPalette)]
}
