package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"batch-sender/internal/service/mq"
	"batch-sender/pkg/batch"
	"batch-sender/pkg/logger"
	"batch-sender/pkg/monitor"
)

// EventBatchPrepared 审计事件类型
const EventBatchPrepared = "batch.prepared"

// BatchPreparedEvent 组装成功后发布的审计事件 (不含 payload)
type BatchPreparedEvent struct {
	Type       string    `json:"type"`
	Wallet     string    `json:"wallet,omitempty"`
	Token      string    `json:"token,omitempty"`
	Asset      string    `json:"asset"`
	Recipients int       `json:"recipients"`
	Groups     int       `json:"groups"`
	Amount     string    `json:"amount"`
	ValidUntil int64     `json:"valid_until"`
	PreparedAt time.Time `json:"prepared_at"`
}

// TransferService 负责批量转账的组装
type TransferService struct {
	assembler *batch.Assembler
	producer  mq.Producer
	topic     string
	timeout   time.Duration
}

// NewTransferService 构造函数
// timeout: 整次组装 (含链上查询) 的超时，<=0 表示不设置
func NewTransferService(assembler *batch.Assembler, producer mq.Producer, topic string, timeout time.Duration) *TransferService {
	if producer == nil {
		producer = mq.NoopProducer{}
	}
	return &TransferService{
		assembler: assembler,
		producer:  producer,
		topic:     topic,
		timeout:   timeout,
	}
}

// PrepareSend 组装批量转账
// 1. 超时包住整个组装过程，超时即整体失败
// 2. 记录业务指标
// 3. 发布审计事件 (失败只记日志，不影响返回)
func (s *TransferService) PrepareSend(ctx context.Context, req batch.TransferRequest) (*batch.PreparedTransaction, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	asset := assetLabel(req)
	start := time.Now()

	tx, err := s.assembler.Assemble(ctx, req)
	if err != nil {
		if monitor.Business != nil {
			monitor.Business.AssemblyFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		}
		return nil, err
	}

	if monitor.Business != nil {
		monitor.Business.AssemblyDuration.WithLabelValues(asset).Observe(time.Since(start).Seconds())
		monitor.Business.BatchPreparedTotal.WithLabelValues(asset).Inc()
		monitor.Business.RecipientsTotal.WithLabelValues(asset).Add(float64(len(req.Recipients)))
	}

	logger.Info("批量转账组装完成",
		zap.String("asset", asset),
		zap.String("wallet", req.Sender),
		zap.Int("recipients", len(req.Recipients)),
		zap.Int("groups", len(tx.Messages)),
		zap.Int64("valid_until", tx.ValidUntil))

	s.publish(ctx, req, tx, asset)
	return tx, nil
}

func (s *TransferService) publish(ctx context.Context, req batch.TransferRequest, tx *batch.PreparedTransaction, asset string) {
	event := BatchPreparedEvent{
		Type:       EventBatchPrepared,
		Wallet:     req.Sender,
		Token:      req.Token,
		Asset:      asset,
		Recipients: len(req.Recipients),
		Groups:     len(tx.Messages),
		Amount:     req.Amount.String(),
		ValidUntil: tx.ValidUntil,
		PreparedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("序列化审计事件失败", zap.Error(err))
		return
	}
	// 请求 ctx 可能已接近超时，事件发送单独给一个短超时
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.producer.Publish(pubCtx, s.topic, req.Sender, payload); err != nil {
		logger.Warn("发布审计事件失败", zap.String("topic", s.topic), zap.Error(err))
	}
}

func assetLabel(req batch.TransferRequest) string {
	if req.IsJetton() {
		return "jetton"
	}
	return "ton"
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, batch.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, batch.ErrResolution):
		return "resolution"
	case errors.Is(err, batch.ErrEncoding):
		return "encoding"
	default:
		return "other"
	}
}
