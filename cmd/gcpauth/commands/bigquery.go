package commands

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	"github.com/AmmannChristian/go-gcpauth/credentials"
)

const (
	defaultBigQueryEndpoint = "https://bigquery.googleapis.com/bigquery/v2"
	envCloudProject         = "GOOGLE_CLOUD_PROJECT"
)

// queryRequest is the body of a BigQuery jobs.query call.
type queryRequest struct {
	Query        string `json:"query"`
	UseLegacySQL bool   `json:"useLegacySql"`
}

func newBigQueryQueryCommand(opts *options) *cobra.Command {
	var (
		project  string
		endpoint string
	)

	command := &cobra.Command{
		Use:     "bigquery-query SQL",
		Short:   "Run a standard SQL query through the BigQuery REST API",
		Example: `  gcpauth bigquery-query --project my-project 'SELECT 1'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cred, err := opts.loadCredential()
			if err != nil {
				return err
			}

			projectID := resolveProject(project, cred)
			if projectID == "" {
				return errors.New("no project: set --project, " + envCloudProject + " or project_id in the credential")
			}

			client, err := opts.newOAuth2Client(ctx, cred, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			payload, err := json.Marshal(queryRequest{Query: args[0]})
			if err != nil {
				return fmt.Errorf("failed to encode query: %w", err)
			}

			hc, err := opts.httpBuilder().WithOAuth2Client(client).Build()
			if err != nil {
				return err
			}

			queryURL := strings.TrimSuffix(endpoint, "/") + "/projects/" + url.PathEscape(projectID) + "/queries"
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, queryURL, bytes.NewReader(payload))
			if err != nil {
				return fmt.Errorf("failed to build request: %w", err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := hc.Do(req)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}
			defer resp.Body.Close()

			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}

	command.Flags().StringVar(&project, "project", "", "Project to run the query in (default $"+envCloudProject+", then the credential's project_id)")
	command.Flags().StringVar(&endpoint, "endpoint", defaultBigQueryEndpoint, "BigQuery REST endpoint")
	_ = command.Flags().MarkHidden("endpoint")

	return command
}

func resolveProject(flag string, cred *credentials.DefaultCredential) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(envCloudProject); p != "" {
		return p
	}
	return cred.ProjectID()
}
