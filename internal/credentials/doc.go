// Package credentials persists the GitHub bearer token used by the poller.
//
// The token lives in a small env-style file inside the config directory so it
// survives restarts without requiring shell configuration. When the file is
// absent the GITHUB_TOKEN environment variable is consulted instead.
package credentials
