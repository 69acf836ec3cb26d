// Package main implements command line client for ghreputation grpc server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	appGrpc "github.com/m-zajac/ghreputation/internal/api/grpc"
	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// reputationClient can fetch profiles and scores from the server.
type reputationClient interface {
	Profile(ctx context.Context, login string) (*app.Profile, error)
	Reputation(ctx context.Context, login string) (*app.Reputation, error)
}

// dialFunc connects to the server. Returned func releases the connection.
type dialFunc func(addr string) (reputationClient, func() error, error)

func main() {
	if err := newRootCmd(dialGRPC).Execute(); err != nil {
		os.Exit(1)
	}
}

func dialGRPC(addr string) (reputationClient, func() error, error) {
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial: %w", err)
	}

	return appGrpc.NewClient(conn), conn.Close, nil
}

func newRootCmd(dial dialFunc) *cobra.Command {
	var (
		serverAddr string
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:           "ghreputationctl",
		Short:         "Query ghreputation server for github profiles and reputation scores",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&serverAddr, "server", "s", "localhost:9090", "The server address in the format of host:port")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	withClient := func(cmd *cobra.Command, f func(context.Context, reputationClient) error) error {
		client, closeConn, err := dial(serverAddr)
		if err != nil {
			return err
		}
		defer closeConn()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		return f(ctx, client)
	}

	var format string
	profileCmd := &cobra.Command{
		Use:   "profile <login>",
		Short: "Print aggregated github profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "markdown" && format != "text" {
				return fmt.Errorf("invalid format %q, must be one of: json, markdown, text", format)
			}
			return withClient(cmd, func(ctx context.Context, c reputationClient) error {
				profile, err := c.Profile(ctx, args[0])
				if err != nil {
					return describeError(err)
				}
				return printProfile(cmd.OutOrStdout(), profile, format)
			})
		},
	}
	profileCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, markdown or text")

	scoreCmd := &cobra.Command{
		Use:   "score <login>",
		Short: "Print github activity score (0-10)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c reputationClient) error {
				reputation, err := c.Reputation(ctx, args[0])
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "GitHub activity score: %d/10\n", reputation.Score)
				return nil
			})
		},
	}

	root.AddCommand(profileCmd, scoreCmd)

	return root
}

func printProfile(w io.Writer, profile *app.Profile, format string) error {
	switch format {
	case "markdown":
		_, err := fmt.Fprintln(w, app.RenderMarkdown(profile))
		return err
	case "text":
		_, err := fmt.Fprintln(w, app.PlainText(app.RenderMarkdown(profile)))
		return err
	}

	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile to json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func describeError(err error) error {
	switch {
	case app.IsInvalidRequestError(err):
		return fmt.Errorf("invalid request: %w", err)
	case app.IsNotFoundError(err):
		return fmt.Errorf("not found: %w", err)
	case app.IsRateLimitedError(err):
		return fmt.Errorf("github rate limit exceeded, try again later: %w", err)
	case app.IsUpstreamUnavailableError(err):
		return fmt.Errorf("github is unavailable: %w", err)
	}

	return fmt.Errorf("server response error: %w", err)
}
