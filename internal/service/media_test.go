package service

import (
	"bytes"
	"context"
	"image/color"
	"net/http"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestpornub/client-go/internal/model"
)

// pngAsset renders a small valid PNG so the fake platform's preview pipeline
// has real pixels to transform.
func pngAsset(t *testing.T, name string, width, height int) *model.UploadAsset {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 0x20, G: 0x60, B: 0xA0, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	return &model.UploadAsset{
		Name:     name,
		MimeType: "image/png",
		Size:     int64(buf.Len()),
		Data:     &buf,
	}
}

func videoAsset(name string) *model.UploadAsset {
	payload := []byte("not really an mp4, but the platform stores blobs as-is")
	return &model.UploadAsset{
		Name:     name,
		MimeType: "video/mp4",
		Size:     int64(len(payload)),
		Data:     bytes.NewReader(payload),
	}
}

func TestUploadFileNilAssetIsNoOp(t *testing.T) {
	ts := newTestStack(t)

	url, err := ts.media.UploadFile(context.Background(), nil, model.KindImage)
	assert.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, 0, ts.fake.FileCount(), "a nil asset must not reach the backend")
}

func TestUploadFileImage(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")

	url, err := ts.media.UploadFile(ctx, pngAsset(t, "thumb.png", 64, 64), model.KindImage)
	require.NoError(t, err)

	assert.Contains(t, url, "/preview?")
	assert.Contains(t, url, "width=2000")
	assert.Contains(t, url, "height=2000")
	assert.Contains(t, url, "gravity=top")
	assert.Contains(t, url, "quality=100")
	assert.Equal(t, 1, ts.fake.FileCount())

	// The derived URL must actually serve a transformed image.
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
}

func TestUploadFileVideo(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")

	url, err := ts.media.UploadFile(ctx, videoAsset("clip.mp4"), model.KindVideo)
	require.NoError(t, err)

	assert.Contains(t, url, "/view?")
	assert.NotContains(t, url, "quality=")

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))
}

func TestUploadFileBackendFailure(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")
	ts.fake.FailUploads(true)

	url, err := ts.media.UploadFile(ctx, videoAsset("clip.mp4"), model.KindVideo)
	assert.Empty(t, url)
	requireBackendError(t, err, model.MsgUploadFailed)
}

func TestUploadFileInvalidKindCollapsesToUploadFailed(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")

	url, err := ts.media.UploadFile(ctx, videoAsset("clip.mp4"), "audio")
	assert.Empty(t, url)
	requireBackendError(t, err, model.MsgUploadFailed)
}

func TestFilePreviewURLShapes(t *testing.T) {
	ts := newTestStack(t)

	videoURL, err := ts.media.FilePreview("file-1", model.KindVideo)
	require.NoError(t, err)
	imageURL, err := ts.media.FilePreview("file-1", model.KindImage)
	require.NoError(t, err)

	assert.NotEqual(t, videoURL, imageURL)
	assert.True(t, strings.Contains(videoURL, "/view?"), "video URL must be the raw view: %s", videoURL)
	assert.True(t, strings.Contains(imageURL, "/preview?"), "image URL must be the bounded preview: %s", imageURL)
	assert.Contains(t, imageURL, "quality=100")
	assert.NotContains(t, videoURL, "width=")
}

func TestFilePreviewInvalidKind(t *testing.T) {
	ts := newTestStack(t)
	// Close the server to prove kind validation happens before any call.
	ts.server.Close()

	url, err := ts.media.FilePreview("file-1", "gif")
	assert.Empty(t, url)
	requireBackendError(t, err, model.MsgInvalidFileType)
}

func TestFilePreviewMissingFileID(t *testing.T) {
	ts := newTestStack(t)

	url, err := ts.media.FilePreview("", model.KindImage)
	assert.Empty(t, url)
	requireBackendError(t, err, model.MsgPreviewFetchFailed)
}
