package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DachengChen/ragask/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPingCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := rt.client.Ping(cmd.Context())
			if err != nil {
				rt.log.Warn("ping failed", zap.Error(err))
				return fmt.Errorf("backend at %s: %w", rt.client.Origin(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newIngestCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file.pdf>",
		Short: "Upload a PDF document into the knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			resp, err := rt.client.Ingest(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				var httpErr *client.HTTPError
				if errors.As(err, &httpErr) {
					rt.log.Warn("ingest rejected", zap.Int("status", httpErr.StatusCode), zap.String("body", httpErr.Body))
				}
				return fmt.Errorf("ingest %s: %w", path, err)
			}

			rt.log.Event("ingest", "document ingested",
				zap.String("file", resp.Filename),
				zap.Int("chunks", resp.ChunksAdded))
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %d chunks)\n", resp.Message, resp.Filename, resp.ChunksAdded)
			return nil
		},
	}
}

func newScrapeCmd(rt *runtime) *cobra.Command {
	var req client.ScrapeRequest

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Start a background scraping job on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.client.Scrape(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("scrape %s: %w", req.TargetURL, err)
			}
			rt.log.Event("scrape", "scraping job accepted",
				zap.String("task_id", resp.TaskID),
				zap.String("url", req.TargetURL))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Message, resp.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TargetURL, "url", "", "page to scrape")
	cmd.Flags().StringVar(&req.ContentSelector, "selector", "body", "CSS selector of the content to keep")
	cmd.Flags().StringVar(&req.OutputFilename, "output", "", "name of the file the backend writes")
	cmd.Flags().BoolVar(&req.Login, "login", false, "log in before scraping")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
