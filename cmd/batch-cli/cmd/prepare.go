package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"batch-sender/pkg/batch"
	"batch-sender/pkg/jetton"
	"batch-sender/pkg/recipient"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "从 CSV 组装批量转账 (TON 或 Jetton)",
	Long: `读取收款人 CSV (address 或 recipient 列)，按每组 4 条消息组装，输出 JSON。
指定 --token 时走 Jetton 路径，需要 --decimals 和 --wallet，并会查询一次链上 Jetton Wallet。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		amountStr, _ := cmd.Flags().GetString("amount")
		token, _ := cmd.Flags().GetString("token")
		decimals, _ := cmd.Flags().GetInt("decimals")
		wallet, _ := cmd.Flags().GetString("wallet")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		// 1. 读取收款人
		f, err := os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("打开 CSV 失败: %w", err)
		}
		defer f.Close()
		entries, err := recipient.ParseCSV(f)
		if err != nil {
			return fmt.Errorf("解析 CSV 失败: %w", err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil {
			return fmt.Errorf("%w: amount %q is not a number", batch.ErrInvalidInput, amountStr)
		}

		req := batch.TransferRequest{
			Sender:     wallet,
			Recipients: recipient.Addresses(entries),
			Amount:     amount,
			Token:      token,
		}
		if cmd.Flags().Changed("decimals") {
			req.TokenDecimals = &decimals
		}

		// 2. 只有 Jetton 路径需要连接网络
		var resolver batch.WalletResolver
		if req.IsJetton() {
			client, err := newTONClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			resolver = jetton.NewResolver(client)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		tx, err := batch.NewAssembler(resolver).Assemble(ctx, req)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), tx)
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
	prepareCmd.Flags().String("csv", "", "收款人 CSV 文件")
	prepareCmd.Flags().StringP("amount", "a", "", "每个收款人的金额 (TON 或代币单位)")
	prepareCmd.Flags().StringP("token", "t", "", "Jetton Master 地址，为空时发送 TON")
	prepareCmd.Flags().Int("decimals", 0, "代币精度 (指定 --token 时必填)")
	prepareCmd.Flags().StringP("wallet", "w", "", "发送方钱包地址")
	_ = prepareCmd.MarkFlagRequired("csv")
	_ = prepareCmd.MarkFlagRequired("amount")
}
