package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Urjashee/response-formatter/api/responses"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		status  string
		message string
		data    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the envelope for a status, message and payload",
		Example: `  respfmt render --status ok --message "ok" --data '[1,2,3]'
  respfmt render --status forbidden`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := responses.ParseStatus(status)
			if err != nil {
				return err
			}
			code, err := render(cmd.OutOrStdout(), s, message, data, cmd.Flags().Changed("data"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", string(responses.StatusOK), "Status tag: OK, ERROR, UNAUTHORIZED or FORBIDDEN")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message (default: the status default message)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Payload as JSON; text that is not JSON is sent as a string")
	return cmd
}

// render writes the envelope to w and returns its HTTP code
func render(w io.Writer, status responses.Status, message, data string, hasData bool) (int, error) {
	var payload any
	if hasData {
		payload = decodePayload(data)
	}

	sink := responses.Writer(w)
	if err := responses.Send(sink, status, message, payload); err != nil {
		return 0, err
	}
	return sink.Code(), nil
}

func decodePayload(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return v
}
