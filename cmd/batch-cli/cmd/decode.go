package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"batch-sender/pkg/jetton"
)

type decodedTransfer struct {
	Op                  string `json:"op"`
	QueryID             uint64 `json:"query_id"`
	Amount              string `json:"amount"`
	Destination         string `json:"destination"`
	ResponseDestination string `json:"response_destination"`
	ForwardAmount       string `json:"forward_ton_amount"`
	Comment             string `json:"comment"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "解码 Jetton transfer payload (base64 BOC)",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, _ := cmd.Flags().GetString("payload")

		body, err := jetton.DecodeTransferBase64(payload)
		if err != nil {
			return fmt.Errorf("解码失败: %w", err)
		}

		out := decodedTransfer{
			Op:            fmt.Sprintf("0x%08x", jetton.OpTransfer),
			QueryID:       body.QueryID,
			Amount:        body.Amount.String(),
			ForwardAmount: body.ForwardAmount.String(),
			Comment:       body.Comment,
		}
		if body.Destination != nil {
			out.Destination = body.Destination.String()
		}
		if body.ResponseDestination != nil {
			out.ResponseDestination = body.ResponseDestination.String()
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("payload", "p", "", "base64 编码的 payload")
	_ = decodeCmd.MarkFlagRequired("payload")
}
