package jetton

import (
	"context"
	"errors"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// GetWalletAddressMethod Jetton Master 上查询持有人钱包地址的 get-method
const GetWalletAddressMethod = "get_wallet_address"

// ErrMalformedStack get-method 返回栈中没有可解析的地址
var ErrMalformedStack = errors.New("malformed get-method result")

// MethodRunner executes a read-only get-method and returns its result stack.
type MethodRunner interface {
	RunGetMethod(ctx context.Context, contract *address.Address, method string, params ...any) ([]any, error)
}

// Resolver resolves Jetton wallet addresses. It keeps no cache between calls.
type Resolver struct {
	runner MethodRunner
}

func NewResolver(runner MethodRunner) *Resolver {
	return &Resolver{runner: runner}
}

// ResolveWallet 查询 owner 在 master 下的 Jetton Wallet 地址
// 调用 master.get_wallet_address(owner_slice)，从返回栈顶读取一个地址
func (r *Resolver) ResolveWallet(ctx context.Context, owner, master string) (string, error) {
	ownerAddr, err := ParseAddress(owner)
	if err != nil {
		return "", fmt.Errorf("owner address %q: %w", owner, err)
	}
	masterAddr, err := ParseAddress(master)
	if err != nil {
		return "", fmt.Errorf("jetton master address %q: %w", master, err)
	}

	arg, err := NewPayloadBuilder().Address(ownerAddr).Cell()
	if err != nil {
		return "", err
	}

	stack, err := r.runner.RunGetMethod(ctx, masterAddr, GetWalletAddressMethod, arg.BeginParse())
	if err != nil {
		return "", fmt.Errorf("%s on %s: %w", GetWalletAddressMethod, masterAddr.String(), err)
	}
	if len(stack) == 0 {
		return "", fmt.Errorf("%w: empty stack", ErrMalformedStack)
	}

	var s *cell.Slice
	switch v := stack[0].(type) {
	case *cell.Slice:
		s = v
	case *cell.Cell:
		s = v.BeginParse()
	default:
		return "", fmt.Errorf("%w: unexpected stack entry %T", ErrMalformedStack, stack[0])
	}

	addr, err := s.LoadAddr()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedStack, err)
	}
	if addr == nil || addr.Type() != address.StdAddress {
		return "", fmt.Errorf("%w: result is not a standard address", ErrMalformedStack)
	}
	return addr.String(), nil
}
