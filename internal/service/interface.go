package service

import (
	"context"

	"batch-sender/pkg/batch"
)

type TransferPreparer interface {
	// PrepareSend 组装批量转账，返回待签名的 PreparedTransaction
	// 失败时只返回 error，不返回部分结果
	PrepareSend(ctx context.Context, req batch.TransferRequest) (*batch.PreparedTransaction, error)
}
