package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"batch-sender/pkg/jetton"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "查询 owner 在某个 Jetton 下的 Jetton Wallet 地址",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		token, _ := cmd.Flags().GetString("token")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		client, err := newTONClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		wallet, err := jetton.NewResolver(client).ResolveWallet(ctx, owner, token)
		if err != nil {
			return fmt.Errorf("查询失败: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), wallet)
		return err
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringP("owner", "o", "", "钱包地址")
	resolveCmd.Flags().StringP("token", "t", "", "Jetton Master 地址")
	_ = resolveCmd.MarkFlagRequired("owner")
	_ = resolveCmd.MarkFlagRequired("token")
}
