package model

import "time"

// VideoPost is a video document in the video collection. Many posts map to
// one User via CreatorID.
type VideoPost struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Prompt       string    `json:"prompt"`
	CreatorID    string    `json:"creatorId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreatePostForm carries the field values a publish screen collects. Both
// assets must upload successfully before the post document is written.
type CreatePostForm struct {
	Title     string
	Thumbnail *UploadAsset
	Video     *UploadAsset
	Prompt    string
	UserID    string
}

// LatestPostsLimit bounds the home-screen "latest" rail. There is no cursor
// or further pagination behind it.
const LatestPostsLimit = 7
