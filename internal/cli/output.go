package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// printJSON pretty-prints a raw API response to the command's stdout.
func printJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Not JSON after all; forward as received.
		_, werr := w.Write(raw)
		return werr
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// passthroughCall is one raw API operation a passthrough subcommand maps to.
type passthroughCall func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error)

// passthroughOpts shapes one passthrough subcommand.
type passthroughOpts struct {
	use      string
	short    string
	args     cobra.PositionalArgs
	needBody bool
	call     passthroughCall
}

// newPassthroughCommand builds a subcommand performing exactly one HTTP
// call and printing the JSON response. Commands that send a body take it
// from --data, or from stdin when --data is "-".
func newPassthroughCommand(opts passthroughOpts) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   opts.use,
		Short: opts.short,
		Args:  opts.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body json.RawMessage
			if opts.needBody {
				raw, err := readBody(data)
				if err != nil {
					return err
				}
				body = raw
			}
			out, err := opts.call(cmd.Context(), args, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	if opts.needBody {
		cmd.Flags().StringVarP(&data, "data", "d", "", "request body as JSON ('-' reads stdin)")
		cmd.MarkFlagRequired("data")
	}
	return cmd
}

func readBody(data string) (json.RawMessage, error) {
	if data == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read body from stdin: %w", err)
		}
		data = string(raw)
	}
	if !json.Valid([]byte(data)) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	return json.RawMessage(data), nil
}

// listQuery converts repeated key=value args to a query string.
func listQuery(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("filter %q is not key=value", p)
		}
		q.Add(key, value)
	}
	return q, nil
}
