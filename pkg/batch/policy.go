package batch

import (
	"math/big"
	"time"

	"github.com/xssnick/tonutils-go/tlb"
)

// 协议参数，不由调用方调整
const (
	// GroupSize 一个外层消息最多携带的转账指令数
	GroupSize = 4
	// NativeDecimals TON 的精度 (1 TON = 10^9 nanoTON)
	NativeDecimals = 9
	// ValidFor 交易有效期
	ValidFor = 600 * time.Second

	// ForwardAmountTON 随 Jetton 转账转发给收款人的通知金额
	ForwardAmountTON = "0.1"
	// ExecutionFeeTON 附在外层消息上的执行费
	ExecutionFeeTON = "0.5"
	// TransferComment 嵌入 forward payload 的文本评论
	TransferComment = "JettonTransfer"
)

// 金额边界。Coins 是 VarUInteger 16，最大 2^120-1 (约 1.3e36)
const (
	// MaxCoinsBits 最小单位金额的最大位宽
	MaxCoinsBits = 120
	// MaxTokenDecimals 超过 36 位精度时任何 >= 1 的金额都无法编码
	MaxTokenDecimals = 36
	// MaxAmountIntDigits 金额整数部分的最大位数
	MaxAmountIntDigits = 37
	// MaxAmountScale 金额小数部分的最大位数
	MaxAmountScale = 64
)

// Policy bundles the fixed batching parameters so tests can inject them.
type Policy struct {
	GroupSize      int
	NativeDecimals int32
	ValidFor       time.Duration
	ForwardAmount  *big.Int
	ExecutionFee   *big.Int
	Comment        string
}

// DefaultPolicy returns the protocol defaults.
func DefaultPolicy() Policy {
	return Policy{
		GroupSize:      GroupSize,
		NativeDecimals: NativeDecimals,
		ValidFor:       ValidFor,
		ForwardAmount:  tlb.MustFromTON(ForwardAmountTON).Nano(),
		ExecutionFee:   tlb.MustFromTON(ExecutionFeeTON).Nano(),
		Comment:        TransferComment,
	}
}
