package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/atlas-client/pkg/atlas"
	"github.com/samvad-hq/atlas-client/pkg/queries"
)

// requestFlags selects the query text and parameters of one Atlas request.
type requestFlags struct {
	query  string
	saved  string
	params []string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "free-text query")
	cmd.Flags().StringVar(&f.saved, "saved", "", "id of a saved query from the queries file")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "query parameter name=value (repeatable)")
}

// build assembles the Request; explicit params override saved ones.
func (f *requestFlags) build(opts *rootOptions) (*atlas.Request, error) {
	params, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}

	query := f.query
	if f.saved != "" {
		reg, err := queries.LoadRegistry(opts.cfg.QueriesFile)
		if err != nil {
			return nil, fmt.Errorf("load queries registry: %w", err)
		}
		saved, ok := reg.ByID(f.saved)
		if !ok {
			return nil, fmt.Errorf("saved query %q not found", f.saved)
		}
		merged := make(map[string]any, len(saved.Params)+len(params))
		for k, v := range saved.Params {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		params = merged
		if query == "" {
			query = saved.Query
		}
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("a --query or --saved query is required")
	}
	return opts.client().NewRequest(query, params), nil
}

// parseParams turns name=value pairs into a parameter map. The literals true
// and false become booleans so they encode as 1 and 0.
func parseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid param %q (expected name=value)", pair)
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true":
			params[name] = true
		case "false":
			params[name] = false
		default:
			params[name] = value
		}
	}
	return params, nil
}

func endpointArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if !atlas.IsEndpoint(args[0]) {
		return fmt.Errorf("unknown endpoint %q (see 'atlas endpoints')", args[0])
	}
	return nil
}

func newURICmd(opts *rootOptions) *cobra.Command {
	var rf requestFlags

	cmd := &cobra.Command{
		Use:   "uri ENDPOINT",
		Short: "Print the request URI for an endpoint",
		Args:  endpointArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.build(opts)
			if err != nil {
				return err
			}
			uri, err := req.URI(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
			return err
		},
	}
	rf.bind(cmd)
	return cmd
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		rf    requestFlags
		raw   bool
		field string
	)

	cmd := &cobra.Command{
		Use:   "run ENDPOINT",
		Short: "Run an endpoint and print its mapped response",
		Args:  endpointArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.build(opts)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, opts)
			defer cancel()

			if raw {
				res, err := req.Execute(ctx, args[0], true)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(res.Body))
				return err
			}

			node, err := req.Run(ctx, args[0], true)
			if err != nil {
				return err
			}
			if field == "" {
				return writeJSON(cmd.OutOrStdout(), node)
			}
			v, ok := node.Path(field)
			if !ok {
				return fmt.Errorf("%s %q: %w", args[0], field, atlas.ErrMissingField)
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	rf.bind(cmd)
	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw response body")
	cmd.Flags().StringVarP(&field, "field", "f", "", "print only the value at a dotted path, e.g. output.0.posts")
	return cmd
}

func newMetaCmd(opts *rootOptions) *cobra.Command {
	var rf requestFlags

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Print query_meta from the volume endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.build(opts)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, opts)
			defer cancel()

			meta, err := req.Meta(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), meta)
		},
	}
	rf.bind(cmd)
	return cmd
}

func newEndpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the supported Atlas endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range atlas.Endpoints {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
