package jetton

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// PayloadBuilder writes width-tagged fields into a TVM cell.
// The first failing write is remembered; later writes are skipped and Cell reports it.
type PayloadBuilder struct {
	b   *cell.Builder
	err error
}

// NewPayloadBuilder starts an empty cell.
func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{b: cell.BeginCell()}
}

func (p *PayloadBuilder) store(field string, fn func() error) *PayloadBuilder {
	if p.err != nil {
		return p
	}
	if err := fn(); err != nil {
		p.err = fmt.Errorf("store %s: %w", field, err)
	}
	return p
}

// Uint32 writes a 32-bit unsigned integer.
func (p *PayloadBuilder) Uint32(v uint32) *PayloadBuilder {
	return p.store("uint32", func() error { return p.b.StoreUInt(uint64(v), 32) })
}

// Uint64 writes a 64-bit unsigned integer.
func (p *PayloadBuilder) Uint64(v uint64) *PayloadBuilder {
	return p.store("uint64", func() error { return p.b.StoreUInt(v, 64) })
}

// Coins writes a VarUInteger 16 amount.
func (p *PayloadBuilder) Coins(v *big.Int) *PayloadBuilder {
	return p.store("coins", func() error {
		if v == nil {
			return errors.New("nil amount")
		}
		return p.b.StoreBigCoins(v)
	})
}

// Address writes a MsgAddress. nil is stored as addr_none.
func (p *PayloadBuilder) Address(a *address.Address) *PayloadBuilder {
	return p.store("address", func() error { return p.b.StoreAddr(a) })
}

// Bit writes a single flag bit.
func (p *PayloadBuilder) Bit(v bool) *PayloadBuilder {
	return p.store("bit", func() error { return p.b.StoreBoolBit(v) })
}

// Ref attaches a child cell.
func (p *PayloadBuilder) Ref(c *cell.Cell) *PayloadBuilder {
	return p.store("ref", func() error {
		if c == nil {
			return errors.New("nil cell")
		}
		return p.b.StoreRef(c)
	})
}

// Text writes a UTF-8 string, spilling into chained refs when it does not fit.
func (p *PayloadBuilder) Text(s string) *PayloadBuilder {
	return p.store("text", func() error { return p.b.StoreStringSnake(s) })
}

// Cell finalizes the builder.
func (p *PayloadBuilder) Cell() (*cell.Cell, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.b.EndCell(), nil
}
