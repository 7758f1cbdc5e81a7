package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gestpornub/client-go/internal/backend"
	"github.com/gestpornub/client-go/internal/config"
	"github.com/gestpornub/client-go/internal/model"
)

// PostService is the video-post side of the facade: publishing and the four
// listing shapes the app's screens use (all, per-creator, search, latest).
type PostService struct {
	backend *backend.Client
	cfg     *config.Config
	media   *MediaService
}

func NewPostService(client *backend.Client, cfg *config.Config, media *MediaService) *PostService {
	return &PostService{
		backend: client,
		cfg:     cfg,
		media:   media,
	}
}

// videoDocument is the payload written to the video collection on publish.
type videoDocument struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Prompt       string `json:"prompt"`
	CreatorID    string `json:"creatorId"`
}

// postList is the envelope video-collection listings arrive in.
type postList struct {
	Total     int               `json:"total"`
	Documents []model.VideoPost `json:"documents"`
}

// CreateVideoPost uploads the thumbnail and the video concurrently, then
// writes the post document. The join fails fast: the first upload failure
// cancels the sibling and no document is written, so a partial failure never
// leaves an orphan post behind.
func (s *PostService) CreateVideoPost(ctx context.Context, form model.CreatePostForm) (*model.VideoPost, error) {
	var thumbnailURL, videoURL string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.media.UploadFile(gctx, form.Thumbnail, model.KindImage)
		thumbnailURL = u
		return err
	})
	g.Go(func() error {
		u, err := s.media.UploadFile(gctx, form.Video, model.KindVideo)
		videoURL = u
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, model.NewBackendError(model.MsgPostCreateFailed)
	}

	doc := videoDocument{
		Title:        form.Title,
		ThumbnailURL: thumbnailURL,
		VideoURL:     videoURL,
		Prompt:       form.Prompt,
		CreatorID:    form.UserID,
	}

	var post model.VideoPost
	err := s.backend.Databases.CreateDocument(ctx, s.cfg.DatabaseID, s.cfg.VideoCollectionID, doc, &post)
	if err != nil {
		return nil, model.NewBackendError(model.MsgPostCreateFailed)
	}
	return &post, nil
}

// AllPosts lists every video post in the platform's default order.
func (s *PostService) AllPosts(ctx context.Context) ([]model.VideoPost, error) {
	var list postList
	err := s.backend.Databases.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.VideoCollectionID, nil, &list)
	if err != nil {
		return nil, model.NewBackendError(model.MsgFetchAllFailed)
	}
	return list.Documents, nil
}

// UserPosts lists the posts created by one user.
func (s *PostService) UserPosts(ctx context.Context, userID string) ([]model.VideoPost, error) {
	queries := []string{backend.Equal("creatorId", userID)}

	var list postList
	err := s.backend.Databases.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.VideoCollectionID, queries, &list)
	if err != nil {
		return nil, model.NewBackendError(model.MsgFetchUserFailed)
	}
	return list.Documents, nil
}

// SearchPosts full-text matches post titles. Unlike every other operation it
// forwards the underlying error text, and a response with no document list at
// all is an error of its own — though an empty slice is a normal, valid
// result (searching for "" matches everything).
func (s *PostService) SearchPosts(ctx context.Context, query string) ([]model.VideoPost, error) {
	queries := []string{backend.Search("title", query)}

	var list postList
	err := s.backend.Databases.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.VideoCollectionID, queries, &list)
	if err != nil {
		return nil, model.NewBackendError(err.Error())
	}
	if list.Documents == nil {
		return nil, model.NewBackendError(model.MsgEmptyResult)
	}
	return list.Documents, nil
}

// LatestPosts lists the newest posts, creation time descending, capped at
// seven. There is no pagination behind the cap.
func (s *PostService) LatestPosts(ctx context.Context) ([]model.VideoPost, error) {
	queries := []string{
		backend.OrderDesc("createdAt"),
		backend.Limit(model.LatestPostsLimit),
	}

	var list postList
	err := s.backend.Databases.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.VideoCollectionID, queries, &list)
	if err != nil {
		return nil, model.NewBackendError(model.MsgFetchLatestFailed)
	}
	return list.Documents, nil
}
