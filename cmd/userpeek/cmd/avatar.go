package cmd

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/userpeek/userpeek/internal/config"
	"github.com/userpeek/userpeek/internal/errors"
	"github.com/userpeek/userpeek/internal/output"
	"github.com/userpeek/userpeek/internal/platform"
)

func newAvatarCmd() *cobra.Command {
	var (
		size       string
		format     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "avatar <user-id>...",
		Short: "Resolve avatar thumbnail URLs",
		Long: `Resolve avatar headshot URLs for one or more user ids.

All ids are fetched in a single batch request. Ids whose thumbnail
is not ready yet print as pending.

Examples:
  userpeek avatar 1
  userpeek avatar 1 156 261 --size 150x150
  userpeek avatar 1 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAvatar(cmd.Context(), cmd, args, size, format, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "Headshot size (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Image format (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAvatar(ctx context.Context, cmd *cobra.Command, args []string, size, format string, jsonOutput bool) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return errors.New(errors.ErrCodeInvalidID,
				"user id must be a positive integer", nil).WithDetail("got", arg)
		}
		ids = append(ids, id)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if size == "" {
		size = cfg.Avatar.Size
	}
	if format == "" {
		format = cfg.Avatar.Format
	}

	client := platform.NewClient(platform.Config{
		BaseURL:      cfg.Endpoints.BaseURL,
		ThumbnailURL: cfg.Endpoints.ThumbnailURL,
		ProfileURL:   cfg.Endpoints.ProfileURL,
	})
	defer client.Close()

	slog.Info("avatar_lookup", slog.Int("ids", len(ids)), slog.String("size", size))

	headshots, err := client.AvatarHeadshots(ctx, ids, size, format)
	if err != nil {
		return err
	}

	urls := make(map[int64]string, len(headshots))
	for _, h := range headshots {
		if h.State == platform.HeadshotStateCompleted && h.ImageURL != "" {
			urls[h.TargetID] = h.ImageURL
		}
	}

	out := output.New(cmd.OutOrStdout())
	if jsonOutput {
		type jsonHeadshot struct {
			UserID int64  `json:"userId"`
			URL    string `json:"url,omitempty"`
			State  string `json:"state"`
		}
		results := make([]jsonHeadshot, 0, len(ids))
		states := make(map[int64]string, len(headshots))
		for _, h := range headshots {
			states[h.TargetID] = h.State
		}
		for _, id := range ids {
			state := states[id]
			if state == "" {
				state = "Unknown"
			}
			results = append(results, jsonHeadshot{UserID: id, URL: urls[id], State: state})
		}
		return out.JSON(results)
	}

	out.Headshots(ids, urls)
	return nil
}
