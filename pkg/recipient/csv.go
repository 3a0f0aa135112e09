package recipient

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 识别的列名 (不区分大小写)，每行优先取 address，为空时取 recipient
const (
	ColumnAddress   = "address"
	ColumnRecipient = "recipient"
)

// ErrNoAddressColumn CSV 表头里既没有 address 也没有 recipient
var ErrNoAddressColumn = errors.New("csv header has no address or recipient column")

// Entry is one parsed row.
type Entry struct {
	Address string `json:"address"`
}

// ParseCSV reads a CSV with a header row and returns the recipient addresses in file order.
// Rows without an address are skipped.
func ParseCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoAddressColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	addrIdx, rcptIdx := -1, -1
	for i, h := range header {
		switch normalizeHeader(h) {
		case ColumnAddress:
			if addrIdx < 0 {
				addrIdx = i
			}
		case ColumnRecipient:
			if rcptIdx < 0 {
				rcptIdx = i
			}
		}
	}
	if addrIdx < 0 && rcptIdx < 0 {
		return nil, ErrNoAddressColumn
	}

	var out []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		if addr := pick(rec, addrIdx, rcptIdx); addr != "" {
			out = append(out, Entry{Address: addr})
		}
	}
	return out, nil
}

// Addresses flattens entries into the plain recipient list the assembler takes.
func Addresses(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Address
	}
	return out
}

func pick(rec []string, idx ...int) string {
	for _, i := range idx {
		if i >= 0 && i < len(rec) {
			if v := strings.TrimSpace(rec[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	// Excel 导出的 UTF-8 BOM
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}
