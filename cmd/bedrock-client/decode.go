package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Zereker/bedrock/packet"
	"github.com/Zereker/bedrock/protocol"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode every packet in a hex-encoded frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := hex.DecodeString(strings.Join(strings.Fields(args[0]), ""))
			if err != nil {
				return errors.Wrap(err, "parse frame")
			}

			reg := packet.NewRegistry()
			r := protocol.NewReader(frame)
			for r.Len() > 0 {
				offset := r.Offset()
				pk, err := reg.Decode(r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-28s %+v\n", offset, pk.ID(), pk)
			}
			return nil
		},
	}
}
