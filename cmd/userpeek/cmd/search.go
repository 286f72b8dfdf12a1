package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/userpeek/userpeek/internal/avatar"
	"github.com/userpeek/userpeek/internal/config"
	"github.com/userpeek/userpeek/internal/output"
	"github.com/userpeek/userpeek/internal/platform"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit   int
	format  string // "text", "json"
	avatars bool   // also resolve headshot URLs
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search users by keyword",
		Long: `Search users by keyword and print the matching profiles.

One-shot variant of the interactive widget, for scripting. With
--avatars, headshot thumbnails are resolved and printed alongside
each result.

Examples:
  userpeek search roblox
  userpeek search "builder man" --limit 5
  userpeek search roblox --format json --avatars`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			return runSearch(cmd.Context(), cmd, keyword, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.avatars, "avatars", false, "Also resolve avatar thumbnail URLs")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, keyword string, opts searchOptions) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	limit := cfg.Search.Limit
	if opts.limit > 0 {
		limit = opts.limit
	}

	client := platform.NewClient(platform.Config{
		BaseURL:      cfg.Endpoints.BaseURL,
		ThumbnailURL: cfg.Endpoints.ThumbnailURL,
		ProfileURL:   cfg.Endpoints.ProfileURL,
	})
	defer client.Close()

	slog.Info("search_started", slog.String("keyword", keyword), slog.Int("limit", limit))

	users, err := client.SearchUsers(ctx, keyword, limit)
	if err != nil {
		return err
	}
	slog.Info("search_complete", slog.Int("results", len(users)))

	var urls map[int64]string
	if opts.avatars && len(users) > 0 {
		cache := avatar.NewCache()
		resolver := avatar.NewResolver(client, cache, avatar.Config{
			Size:           cfg.Avatar.Size,
			Format:         cfg.Avatar.Format,
			PlaceholderURL: cfg.Avatar.PlaceholderURL,
		}, slog.Default())

		ids := make([]int64, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		resolver.Resolve(ctx, ids)

		urls = make(map[int64]string, len(ids))
		for _, id := range ids {
			if url, ok := cache.Get(id); ok {
				urls[id] = url
			}
		}
	}

	if opts.format == "json" {
		type jsonResult struct {
			platform.User
			AvatarURL  string `json:"avatarUrl,omitempty"`
			ProfileURL string `json:"profileUrl"`
		}
		results := make([]jsonResult, len(users))
		for i, u := range users {
			results[i] = jsonResult{
				User:       u,
				AvatarURL:  urls[u.ID],
				ProfileURL: client.ProfileURL(u.ID),
			}
		}
		return out.JSON(results)
	}

	out.Users(users)
	if urls != nil {
		out.Newline()
		ids := make([]int64, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		out.Headshots(ids, urls)
	}
	return nil
}
