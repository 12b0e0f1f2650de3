package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newRequestCommand(opts *options) *cobra.Command {
	var (
		data              string
		contentType       string
		noFollowRedirects bool
	)

	command := &cobra.Command{
		Use:   "request METHOD URL",
		Short: "Send an authenticated HTTP request and print the response",
		Example: `  gcpauth request GET https://cloudresourcemanager.googleapis.com/v1/projects
  gcpauth request POST https://pubsub.googleapis.com/v1/projects/p/topics/t:publish --data '{"messages":[]}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			method := strings.ToUpper(args[0])

			cred, err := opts.loadCredential()
			if err != nil {
				return err
			}

			client, err := opts.newOAuth2Client(ctx, cred, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var body io.Reader
			if data != "" {
				body = strings.NewReader(data)
			}

			req, err := client.NewRequest(ctx, method, args[1], body)
			if err != nil {
				return err
			}
			if body != nil {
				req.Header.Set("Content-Type", contentType)
			}

			builder := opts.httpBuilder()
			if noFollowRedirects {
				builder = builder.WithoutRedirects()
			}
			hc, err := builder.Build()
			if err != nil {
				return err
			}

			resp, err := hc.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}

	command.Flags().StringVarP(&data, "data", "d", "", "Request body")
	command.Flags().StringVar(&contentType, "content-type", "application/json", "Content-Type of the request body")
	command.Flags().BoolVar(&noFollowRedirects, "no-follow-redirects", false, "Print 3xx responses instead of following them")

	return command
}
