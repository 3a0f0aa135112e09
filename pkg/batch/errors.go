package batch

import "errors"

var (
	// ErrInvalidInput 请求字段缺失或越界，在任何网络调用之前返回
	ErrInvalidInput = errors.New("invalid input")
	// ErrResolution 查询 Jetton Wallet 地址失败 (网络、超时、返回栈格式错误)
	ErrResolution = errors.New("jetton wallet resolution failed")
	// ErrEncoding 构造 transfer payload 时地址或金额非法
	ErrEncoding = errors.New("payload encoding failed")
)
