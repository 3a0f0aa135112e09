package handler

import (
	"github.com/gin-gonic/gin"

	"batch-sender/internal/handler/request"
	"batch-sender/internal/handler/response"
	"batch-sender/internal/service"
	"batch-sender/pkg/errno"
	"batch-sender/pkg/validator"
)

type TransferHandler struct {
	svc service.TransferPreparer
}

func NewTransferHandler(svc service.TransferPreparer) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// PrepareSend 组装批量转账
// @Summary 组装批量转账
// @Description 为 TON 或 Jetton 批量转账生成待签名的消息组 (每组最多 4 条)
// @Tags Transfer
// @Accept json
// @Produce json
// @Param request body request.PrepareSendRequest true "Prepare Send Request"
// @Success 200 {object} batch.PreparedTransaction
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /prepare-send [post]
func (h *TransferHandler) PrepareSend(c *gin.Context) {
	// 1. 绑定参数
	var req request.PrepareSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrInvalidInput.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	// 2. 调用 Service
	tx, err := h.svc.PrepareSend(c.Request.Context(), req.ToTransferRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, tx)
}
