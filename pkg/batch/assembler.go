package batch

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"batch-sender/pkg/jetton"
	"batch-sender/pkg/logger"
)

// WalletResolver looks up the Jetton wallet owned by owner for the given Jetton master.
type WalletResolver interface {
	ResolveWallet(ctx context.Context, owner, master string) (string, error)
}

// Assembler turns a TransferRequest into a PreparedTransaction.
// It holds no per-request state and is safe for concurrent use.
type Assembler struct {
	resolver WalletResolver
	policy   Policy
	now      func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithPolicy overrides the default batching policy.
func WithPolicy(p Policy) Option {
	return func(a *Assembler) { a.policy = p }
}

// WithClock overrides the wall clock used for ValidUntil.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// NewAssembler 构造函数。resolver 只在 Jetton 转账时使用，TON 转账可以传 nil
func NewAssembler(resolver WalletResolver, opts ...Option) *Assembler {
	a := &Assembler{
		resolver: resolver,
		policy:   DefaultPolicy(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Validate checks the request without touching the network.
func Validate(req TransferRequest) error {
	if len(req.Recipients) == 0 {
		return fmt.Errorf("%w: recipients list is empty", ErrInvalidInput)
	}
	for i, r := range req.Recipients {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("%w: recipient #%d is blank", ErrInvalidInput, i)
		}
	}
	if err := checkAmountRange(req.Amount); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, req.Amount)
	}
	if req.IsJetton() {
		if req.TokenDecimals == nil {
			return fmt.Errorf("%w: token decimals are required for jetton transfers", ErrInvalidInput)
		}
		if d := *req.TokenDecimals; d < 0 || d > MaxTokenDecimals {
			return fmt.Errorf("%w: token decimals must be within [0, %d], got %d", ErrInvalidInput, MaxTokenDecimals, d)
		}
		if strings.TrimSpace(req.Sender) == "" {
			return fmt.Errorf("%w: wallet address is required for jetton transfers", ErrInvalidInput)
		}
	}
	return nil
}

// Assemble 组装批量转账
// 1. 校验参数 (失败时不发起任何网络请求)
// 2. 生成每个收款人的 TransferDescriptor
// 3. 按 GroupSize 分组，保持原始顺序
// 任意一步失败都只返回 error，不返回部分结果
func (a *Assembler) Assemble(ctx context.Context, req TransferRequest) (*PreparedTransaction, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var (
		descriptors []TransferDescriptor
		err         error
	)
	if req.IsJetton() {
		descriptors, err = a.jettonDescriptors(ctx, req)
	} else {
		descriptors, err = a.nativeDescriptors(req)
	}
	if err != nil {
		return nil, err
	}

	return &PreparedTransaction{
		Messages:   Partition(descriptors, a.policy.GroupSize),
		ValidUntil: a.now().Add(a.policy.ValidFor).Unix(),
	}, nil
}

func (a *Assembler) nativeDescriptors(req TransferRequest) ([]TransferDescriptor, error) {
	nano := roundUnits(req.Amount, a.policy.NativeDecimals)
	if nano.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount %s is below 1 nanoTON", ErrInvalidInput, req.Amount)
	}
	if !FitsCoins(nano) {
		return nil, fmt.Errorf("%w: amount %s exceeds the largest TON coin value", ErrInvalidInput, req.Amount)
	}

	out := make([]TransferDescriptor, len(req.Recipients))
	for i, rcpt := range req.Recipients {
		out[i] = TransferDescriptor{
			Address:   rcpt,
			Recipient: rcpt,
			Amount:    new(big.Int).Set(nano),
		}
	}
	return out, nil
}

func (a *Assembler) jettonDescriptors(ctx context.Context, req TransferRequest) ([]TransferDescriptor, error) {
	units, err := ToUnits(req.Amount, *req.TokenDecimals)
	if err != nil {
		return nil, err
	}
	if units.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount %s is below the token's smallest unit", ErrInvalidInput, req.Amount)
	}
	if !FitsCoins(units) {
		return nil, fmt.Errorf("%w: amount %s exceeds the largest jetton coin value", ErrInvalidInput, req.Amount)
	}
	// 地址格式错误属于输入问题，不应发起查询，也不应报告为 ErrResolution
	if _, err := jetton.ParseAddress(req.Sender); err != nil {
		return nil, fmt.Errorf("%w: wallet address %q: %w", ErrEncoding, req.Sender, err)
	}
	if _, err := jetton.ParseAddress(req.Token); err != nil {
		return nil, fmt.Errorf("%w: token address %q: %w", ErrEncoding, req.Token, err)
	}
	if a.resolver == nil {
		return nil, fmt.Errorf("%w: no resolver configured", ErrResolution)
	}

	// 发送方的 Jetton Wallet 对同一个 (sender, token) 恒定，整批只查一次
	senderWallet, err := a.resolver.ResolveWallet(ctx, req.Sender, req.Token)
	if err != nil {
		logger.Error("查询 Jetton Wallet 失败",
			zap.String("owner", req.Sender),
			zap.String("master", req.Token),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}
	logger.Debug("Jetton Wallet 已解析",
		zap.String("owner", req.Sender),
		zap.String("wallet", senderWallet))

	out := make([]TransferDescriptor, len(req.Recipients))
	for i, rcpt := range req.Recipients {
		body, err := jetton.EncodeTransfer(rcpt, req.Sender, units, a.policy.ForwardAmount, a.policy.Comment)
		if err != nil {
			return nil, fmt.Errorf("%w: recipient #%d (%s): %w", ErrEncoding, i, rcpt, err)
		}
		out[i] = TransferDescriptor{
			Address:      senderWallet,
			Recipient:    rcpt,
			Amount:       new(big.Int).Set(units),
			Payload:      body,
			ExecutionFee: new(big.Int).Set(a.policy.ExecutionFee),
		}
	}
	return out, nil
}
