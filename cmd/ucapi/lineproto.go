package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/spf13/cobra"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/history"
	"github.com/nerrad567/ucapi/internal/infrastructure/influxdb"
	"github.com/nerrad567/ucapi/ws"
)

// linePrinter writes each point as a line of line protocol.
type linePrinter struct {
	w   io.Writer
	err error
}

func (p *linePrinter) WritePoint(pt *write.Point) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, history.LineProtocol(pt))
	}
}

func lineProtocolCmd(a *app) *cobra.Command {
	var toInflux bool

	cmd := &cobra.Command{
		Use:   "line-protocol <file>",
		Short: "Convert entity_change events to InfluxDB line protocol",
		Long: `Read one ws.Message or an array of them (JSON or HuJSON, "-" for stdin)
and print every entity_change event as line protocol. Other messages are
skipped. With --write the points are sent to the configured InfluxDB
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			policy, err := a.policyFor(messageType)
			if err != nil {
				return err
			}
			msgs, err := decodeMessages(data, policy)
			if err != nil {
				return err
			}

			printer := &linePrinter{w: a.out}
			var sink history.PointWriter = printer
			if toInflux {
				client, err := influxdb.Connect(cmd.Context(), a.cfg.InfluxDB)
				if err != nil {
					return err
				}
				defer client.Close() //nolint:errcheck // Close flushes and always returns nil
				client.SetOnError(func(err error) {
					a.log.Error("influxdb write failed", "error", err)
				})
				sink = client
			}

			rec := history.NewRecorder(sink)
			rec.SetDecodePolicy(policy)
			written := 0
			for i, m := range msgs {
				err := rec.RecordMessage(m)
				if errors.Is(err, history.ErrNotEntityChange) {
					a.log.Debug("skipping message", "index", i, "msg", m.Msg)
					continue
				}
				if err != nil {
					return fmt.Errorf("message %d: %w", i, err)
				}
				written++
			}
			if printer.err != nil {
				return printer.err
			}
			a.log.Info("entity changes converted", "messages", len(msgs), "points", written, "influxdb", toInflux)
			return nil
		},
	}
	cmd.Flags().BoolVar(&toInflux, "write", false, "write the points to the configured InfluxDB")
	return cmd
}

// decodeMessages accepts a single message object or an array of them.
func decodeMessages(data []byte, p codec.Policy) ([]ws.Message, error) {
	if len(data) > 0 && data[0] != '[' {
		var m ws.Message
		if err := codec.UnmarshalPolicy(data, &m, p); err != nil {
			return nil, err
		}
		return []ws.Message{m}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrMalformed, err)
	}
	msgs := make([]ws.Message, len(raw))
	for i, r := range raw {
		if err := codec.UnmarshalPolicy(r, &msgs[i], p); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}
	return msgs, nil
}
