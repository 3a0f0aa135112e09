package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"batch-sender/pkg/batch"
)

// PrepareSendRequest POST /prepare-send 的请求体
// amount 与 tokenDecimals 既可以是数字也可以是字符串
type PrepareSendRequest struct {
	Addresses     []string        `json:"addresses" binding:"required,min=1"`
	Amount        decimal.Decimal `json:"amount"`
	TokenAddress  string          `json:"tokenAddress" binding:"omitempty,ton_address"`
	TokenDecimals Decimals        `json:"tokenDecimals" swaggertype:"integer"`
	WalletAddress string          `json:"walletAddress" binding:"omitempty,ton_address"`
}

// ToTransferRequest 转换为领域请求，其余校验交给 batch.Validate
func (r PrepareSendRequest) ToTransferRequest() batch.TransferRequest {
	req := batch.TransferRequest{
		Sender:     strings.TrimSpace(r.WalletAddress),
		Recipients: r.Addresses,
		Amount:     r.Amount,
		Token:      strings.TrimSpace(r.TokenAddress),
	}
	if r.TokenDecimals.Set {
		d := r.TokenDecimals.Value
		req.TokenDecimals = &d
	}
	return req
}

// Decimals 代币精度，接受 9 或 "9"；null 和 "" 视为未填写
type Decimals struct {
	Value int
	Set   bool
}

func (d *Decimals) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Decimals{}
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*d = Decimals{}
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("tokenDecimals must be an integer, got %s", data)
	}
	*d = Decimals{Value: n, Set: true}
	return nil
}
