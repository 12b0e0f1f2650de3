// Package credentials loads Google default credentials from the environment or from a credential file.
//
// Two credential shapes are supported, discriminated by their account type: service accounts and
// authorized users. Loading never touches the network; the resulting DefaultCredential is meant to be
// converted once into an oauth2client configuration and then discarded.
//
// # Features
//
//   - Tagged-union DefaultCredential with strict rejection of unknown account types
//   - Environment loading (GOOGLE_ACCOUNT_TYPE and friends) with typed errors
//   - Credential file loading, including the gcloud application default credentials path
//   - Private keys stored with literal "\n" escapes in shell environments are unescaped
//
// # Quick Start
//
//	cred, err := credentials.Find()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if cred.Type != credentials.AuthorizedUser {
//	    log.Fatalf("unsupported credential type %q", cred.Type)
//	}
//
//	client := oauth2client.NewClient(oauth2client.ConfigFromAuthorizedUser(cred.AuthorizedUser))
//
// # Environment
//
//   - GOOGLE_ACCOUNT_TYPE: service_account or authorized_user
//   - GOOGLE_PRIVATE_KEY, GOOGLE_CLIENT_EMAIL: required for service_account
//   - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REFRESH_TOKEN: required for authorized_user
//   - GOOGLE_PROJECT_ID: optional for both
package credentials
