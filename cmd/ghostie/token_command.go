package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ghostie/internal/config"
	"ghostie/internal/credentials"
)

func newTokenCommand(ctx *commandContext) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored GitHub token",
	}
	tokenCmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Prompt for a GitHub token and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			token, err := promptToken(cmd)
			if err != nil {
				return err
			}
			if err := credentials.Set(cfg, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", cfg.TokenPath())
			return nil
		},
	})
	return tokenCmd
}

// ensureToken prompts for and stores a token when none is configured.
func ensureToken(cmd *cobra.Command, cfg *config.Config) error {
	if credentials.IsSet(cfg) {
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "No GitHub token found.")
	token, err := promptToken(cmd)
	if err != nil {
		return err
	}
	return credentials.Set(cfg, token)
}

// promptToken reads a token without echo when stdin is a terminal and as a
// plain line otherwise.
func promptToken(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "GitHub token: ")
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return validateToken(string(raw))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read token: %w", err)
	}
	return validateToken(line)
}

func validateToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", errors.New("token must not be empty")
	}
	return token, nil
}
