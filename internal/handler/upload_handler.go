package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"batch-sender/internal/handler/response"
	"batch-sender/pkg/errno"
	"batch-sender/pkg/logger"
	"batch-sender/pkg/monitor"
	"batch-sender/pkg/recipient"
)

// UploadField multipart 表单里的文件字段名
const UploadField = "csv"

// maxUploadSize 上传的 CSV 大小上限
const maxUploadSize = 8 << 20

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// Upload 解析收款人 CSV
// @Summary 上传收款人 CSV
// @Description 读取 address 列 (没有时读取 recipient 列)，按文件顺序返回收款人
// @Tags Transfer
// @Accept multipart/form-data
// @Produce json
// @Param csv formData file true "CSV file"
// @Success 200 {array} recipient.Entry
// @Failure 400 {object} response.ErrorBody
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fh, err := c.FormFile(UploadField)
	if err != nil {
		response.Error(c, errno.ErrUploadMissing)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, errno.ErrUploadInvalid.WithMessage(err.Error()))
		return
	}
	defer f.Close()

	entries, err := recipient.ParseCSV(f)
	if err != nil {
		msg := errno.ErrUploadInvalid.Message + ": " + err.Error()
		if errors.Is(err, recipient.ErrNoAddressColumn) {
			msg = err.Error()
		}
		response.Error(c, errno.ErrUploadInvalid.WithMessage(msg))
		return
	}
	if entries == nil {
		entries = []recipient.Entry{}
	}

	if monitor.Business != nil {
		monitor.Business.UploadedRecipientsTotal.Add(float64(len(entries)))
	}
	logger.Info("收款人 CSV 已解析",
		zap.String("file", fh.Filename),
		zap.Int("recipients", len(entries)))

	response.JSON(c, entries)
}
