package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// withTimeout bounds the command context by the configured HTTP timeout.
func withTimeout(cmd *cobra.Command, opts *rootOptions) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.cfg == nil || opts.cfg.HTTPTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, opts.cfg.HTTPTimeout)
}
