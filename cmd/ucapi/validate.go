package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/ucapi/schema"
	"github.com/nerrad567/ucapi/ws"
)

var errInvalidPayload = errors.New("invalid payload")

const messageType = "ws.Message"

func validateCmd(a *app) *cobra.Command {
	var typeName string
	var payload bool

	cmd := &cobra.Command{
		Use:   "validate --type <name> <file>...",
		Short: "Decode and validate payload files",
		Long: `Decode each file (JSON or HuJSON, "-" for stdin) as the named type and run
its validation. With --payload the file holds a ws.Message envelope and its
msg_data is decoded as the payload type of the message.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload {
				typeName = messageType
			}
			if typeName == "" {
				return errors.New("--type or --payload is required")
			}
			policy, err := a.policyFor(typeName)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				data, err := a.readInput(path)
				if err != nil {
					return err
				}

				v, err := schema.DecodePolicy(typeName, data, policy)
				if err == nil && payload {
					v, err = a.decodePayload(*v.(*ws.Message))
				}
				if err != nil {
					failed++
					fmt.Fprintf(a.out, "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(a.out, "%s: ok (%T)\n", path, v)
			}

			a.log.Debug("validated payloads", "type", typeName, "files", len(args), "failed", failed, "policy", policy)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errInvalidPayload, failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "registered type name, see `ucapi types`")
	cmd.Flags().BoolVar(&payload, "payload", false, "decode a message envelope and its payload")
	return cmd
}
