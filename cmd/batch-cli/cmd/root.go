package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"batch-sender/pkg/logger"
	"batch-sender/pkg/tonclient"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "batch-cli",
	Short: "TON / Jetton 批量转账命令行工具",
	Long: `离线组装批量转账消息、解码 Jetton transfer payload、查询 Jetton Wallet 地址。
组装结果与 batch-server 的 /prepare-send 完全一致，可直接交给钱包签名。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init("cli")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("network", "mainnet", "TON 网络 (mainnet / testnet)")
	rootCmd.PersistentFlags().String("config-url", "", "自定义 liteserver 配置 URL，优先于 --network")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "链上查询超时")
}

// newTONClient 按全局参数创建 liteclient
func newTONClient(cmd *cobra.Command) (*tonclient.Client, error) {
	configURL, _ := cmd.Flags().GetString("config-url")
	if configURL == "" {
		network, _ := cmd.Flags().GetString("network")
		var err error
		if configURL, err = tonclient.ConfigURL(network); err != nil {
			return nil, err
		}
	}
	return tonclient.New(configURL), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("输出 JSON 失败: %w", err)
	}
	return nil
}
