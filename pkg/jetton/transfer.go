package jetton

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	// OpTransfer Jetton 标准 (TEP-74) transfer 操作码
	OpTransfer uint32 = 0x0f8a7ea5
	// OpTextComment forward payload 中表示纯文本评论的前缀
	OpTextComment uint32 = 0
)

// TransferBody is the TEP-74 transfer message sent to the sender's Jetton wallet.
type TransferBody struct {
	QueryID             uint64
	Amount              *big.Int
	Destination         *address.Address
	ResponseDestination *address.Address
	ForwardAmount       *big.Int
	Comment             string
}

// Cell lays the body out in wire order:
//
//	transfer#0f8a7ea5 query_id:uint64 amount:Coins destination:MsgAddress
//	    response_destination:MsgAddress custom_payload:(Maybe ^Cell)=0
//	    forward_ton_amount:Coins forward_payload:(Either Cell ^Cell)=1 ^[uint32 0, text]
func (t *TransferBody) Cell() (*cell.Cell, error) {
	comment, err := NewPayloadBuilder().
		Uint32(OpTextComment).
		Text(t.Comment).
		Cell()
	if err != nil {
		return nil, fmt.Errorf("forward payload: %w", err)
	}

	return NewPayloadBuilder().
		Uint32(OpTransfer).
		Uint64(t.QueryID).
		Coins(t.Amount).
		Address(t.Destination).
		Address(t.ResponseDestination).
		Bit(false). // 无 custom payload
		Coins(t.ForwardAmount).
		Bit(true). // forward payload 以引用形式存放
		Ref(comment).
		Cell()
}

// EncodeTransfer builds a transfer body and returns it serialized as a BOC.
func EncodeTransfer(destination, responseDestination string, amount, forwardAmount *big.Int, comment string) ([]byte, error) {
	dst, err := ParseAddress(destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	resp, err := ParseAddress(responseDestination)
	if err != nil {
		return nil, fmt.Errorf("response destination: %w", err)
	}

	body := &TransferBody{
		Amount:              amount,
		Destination:         dst,
		ResponseDestination: resp,
		ForwardAmount:       forwardAmount,
		Comment:             comment,
	}
	c, err := body.Cell()
	if err != nil {
		return nil, err
	}
	return c.ToBOC(), nil
}

// EncodeTransferBase64 is EncodeTransfer with base64 transport encoding.
func EncodeTransferBase64(destination, responseDestination string, amount, forwardAmount *big.Int, comment string) (string, error) {
	boc, err := EncodeTransfer(destination, responseDestination, amount, forwardAmount, comment)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(boc), nil
}

// DecodeTransfer parses a BOC produced by EncodeTransfer.
func DecodeTransfer(boc []byte) (*TransferBody, error) {
	root, err := cell.FromBOC(boc)
	if err != nil {
		return nil, fmt.Errorf("parse boc: %w", err)
	}
	s := root.BeginParse()

	op, err := s.LoadUInt(32)
	if err != nil {
		return nil, fmt.Errorf("load op: %w", err)
	}
	if uint32(op) != OpTransfer {
		return nil, fmt.Errorf("unexpected op 0x%08x", op)
	}

	var t TransferBody
	if t.QueryID, err = s.LoadUInt(64); err != nil {
		return nil, fmt.Errorf("load query id: %w", err)
	}
	if t.Amount, err = s.LoadBigCoins(); err != nil {
		return nil, fmt.Errorf("load amount: %w", err)
	}
	if t.Destination, err = s.LoadAddr(); err != nil {
		return nil, fmt.Errorf("load destination: %w", err)
	}
	if t.ResponseDestination, err = s.LoadAddr(); err != nil {
		return nil, fmt.Errorf("load response destination: %w", err)
	}

	hasCustom, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("load custom payload flag: %w", err)
	}
	if hasCustom {
		if _, err = s.LoadRef(); err != nil {
			return nil, fmt.Errorf("load custom payload: %w", err)
		}
	}

	if t.ForwardAmount, err = s.LoadBigCoins(); err != nil {
		return nil, fmt.Errorf("load forward amount: %w", err)
	}

	inRef, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("load forward payload flag: %w", err)
	}
	fwd := s
	if inRef {
		if fwd, err = s.LoadRef(); err != nil {
			return nil, fmt.Errorf("load forward payload: %w", err)
		}
	}
	if fwd.BitsLeft() >= 32 {
		marker, err := fwd.LoadUInt(32)
		if err != nil {
			return nil, fmt.Errorf("load comment marker: %w", err)
		}
		if uint32(marker) == OpTextComment {
			if t.Comment, err = fwd.LoadStringSnake(); err != nil {
				return nil, fmt.Errorf("load comment: %w", err)
			}
		}
	}
	return &t, nil
}

// DecodeTransferBase64 is DecodeTransfer for a base64 transported payload.
func DecodeTransferBase64(payload string) (*TransferBody, error) {
	boc, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return DecodeTransfer(boc)
}

// ErrInvalidAddress 地址无法被解析
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress accepts both user-friendly (EQ.../UQ...) and raw (0:hex) forms.
// Failures wrap ErrInvalidAddress.
func ParseAddress(s string) (*address.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	var (
		addr *address.Address
		err  error
	)
	if strings.Contains(s, ":") {
		addr, err = address.ParseRawAddr(s)
	} else {
		addr, err = address.ParseAddr(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return addr, nil
}
