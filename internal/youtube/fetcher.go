// Package youtube fetches top-level comments and their replies from the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/yousafroja/comment-analyzer/internal/comments"
)

const (
	// DefaultMaxComments is used when Fetch is called with a non-positive maximum.
	DefaultMaxComments = 100

	pageSize          = 100
	defaultPageDelay  = 1 * time.Second
	defaultErrorPause = 5 * time.Second
)

var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`)

// ExtractVideoID pulls the 11-character video id out of a watch, short or embed URL.
// Input that does not match is returned unchanged so raw ids work too.
func ExtractVideoID(input string) string {
	if m := videoIDPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}

	return input
}

// NewService builds a YouTube Data API client authenticated with apiKey.
func NewService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*yt.Service, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}

	return service, nil
}

// Fetcher pages through commentThreads.list for one video.
type Fetcher struct {
	service *yt.Service
	logger  *zerolog.Logger

	// PageDelay is slept after every page that was fetched successfully.
	PageDelay time.Duration
	// ErrorPause is slept once after a failed page, before giving up.
	ErrorPause time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// NewFetcher returns a Fetcher with the default page delay and error pause.
func NewFetcher(service *yt.Service, logger *zerolog.Logger) *Fetcher {
	return &Fetcher{
		service:    service,
		logger:     logger,
		PageDelay:  defaultPageDelay,
		ErrorPause: defaultErrorPause,
		Sleep:      time.Sleep,
	}
}

// Fetch collects up to maxComments top-level comments for the video named by input
// (a URL or a bare id). A failing page ends pagination: the error is logged and the
// comments gathered so far are returned. Fetch never fails as a whole.
func (f *Fetcher) Fetch(ctx context.Context, input string, maxComments int) comments.Table {
	if maxComments <= 0 {
		maxComments = DefaultMaxComments
	}

	videoID := ExtractVideoID(input)
	logger := f.logger.With().Str("video_id", videoID).Logger()

	records := make([]comments.Record, 0, min(maxComments, pageSize))
	pageToken := ""
	pages := 0

	for len(records) < maxComments {
		call := f.service.CommentThreads.List([]string{"snippet", "replies"}).
			VideoId(videoID).
			MaxResults(pageSize).
			TextFormat("plainText").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			logger.Error().Err(err).Int("collected", len(records)).Msg("Failed to fetch comments, stopping pagination")
			f.sleep(f.ErrorPause)

			break
		}

		pages++

		for _, item := range response.Items {
			records = append(records, recordFromThread(item))
			if len(records) >= maxComments {
				break
			}
		}

		logger.Debug().Int("page", pages).Int("items", len(response.Items)).Int("collected", len(records)).Msg("Fetched comment page")

		pageToken = response.NextPageToken
		f.sleep(f.PageDelay)

		if pageToken == "" {
			break
		}
	}

	logger.Info().Int("comments", len(records)).Int("pages", pages).Msg("Comment fetch finished")

	return comments.NewTable(records)
}

func (f *Fetcher) sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	if f.Sleep != nil {
		f.Sleep(d)
		return
	}

	time.Sleep(d)
}

func recordFromThread(item *yt.CommentThread) comments.Record {
	record := comments.Record{Replies: []string{}}

	if item.Snippet != nil && item.Snippet.TopLevelComment != nil && item.Snippet.TopLevelComment.Snippet != nil {
		top := item.Snippet.TopLevelComment.Snippet
		record.Comment = top.TextDisplay
		record.UserName = top.AuthorDisplayName
		record.Date = top.PublishedAt
	}

	if item.Replies != nil {
		for _, reply := range item.Replies.Comments {
			if reply == nil || reply.Snippet == nil {
				record.Replies = append(record.Replies, "")
				continue
			}

			record.Replies = append(record.Replies, reply.Snippet.TextDisplay)
		}
	}

	return record
}
