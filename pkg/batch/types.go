package batch

import (
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"
)

// TransferRequest is the input of one batch preparation.
// Token is the Jetton master address; empty means a native TON transfer.
type TransferRequest struct {
	Sender        string          `json:"sender"`                   // 发送方钱包地址 (Jetton 转账必填)
	Recipients    []string        `json:"recipients"`               // 收款地址，顺序即输出顺序
	Amount        decimal.Decimal `json:"amount"`                   // 每个收款人的金额 (人类可读单位)
	Token         string          `json:"token,omitempty"`          // Jetton Master 地址
	TokenDecimals *int            `json:"token_decimals,omitempty"` // Jetton 精度，仅 Jetton 转账需要
}

// IsJetton reports whether the request takes the Jetton path.
func (r TransferRequest) IsJetton() bool {
	return r.Token != ""
}

// TransferDescriptor describes one outbound message of the batch.
type TransferDescriptor struct {
	// Address 外层消息的目标地址。
	// TON 转账时是收款人；Jetton 转账时是发送方自己的 Jetton Wallet。
	Address string
	// Recipient 最终收款人 (TON 转账时等于 Address)
	Recipient string
	// Amount 资产最小单位下的转账金额 (nanoTON 或 Jetton units)
	Amount *big.Int
	// Payload Jetton transfer body 的 BOC，仅 Jetton 转账存在
	Payload []byte
	// ExecutionFee 外层消息附带的 TON (nanoTON)，仅 Jetton 转账存在
	ExecutionFee *big.Int
}

// message is the TonConnect wire form of a TransferDescriptor.
type message struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Payload string `json:"payload,omitempty"`
}

// MarshalJSON renders the descriptor as a TonConnect message: amount is the TON value
// attached to the outer message and payload is the base64 BOC.
func (d TransferDescriptor) MarshalJSON() ([]byte, error) {
	m := message{Address: d.Address}
	switch {
	case d.ExecutionFee != nil:
		m.Amount = d.ExecutionFee.String()
	case d.Amount != nil:
		m.Amount = d.Amount.String()
	default:
		m.Amount = "0"
	}
	if len(d.Payload) > 0 {
		m.Payload = base64.StdEncoding.EncodeToString(d.Payload)
	}
	return json.Marshal(m)
}

// Batch is the ordered list of message groups; each group fits into one outer wallet message.
type Batch [][]TransferDescriptor

// Len returns the total number of descriptors across all groups.
func (b Batch) Len() int {
	n := 0
	for _, g := range b {
		n += len(g)
	}
	return n
}

// Flatten concatenates the groups in order.
func (b Batch) Flatten() []TransferDescriptor {
	out := make([]TransferDescriptor, 0, b.Len())
	for _, g := range b {
		out = append(out, g...)
	}
	return out
}

// PreparedTransaction is what the signer receives. ValidUntil is a unix timestamp in seconds;
// after it the batch must be considered stale.
type PreparedTransaction struct {
	Messages   Batch `json:"messages"`
	ValidUntil int64 `json:"validUntil"`
}
