package services

import (
	"errors"
	"fmt"
)

// 业务错误哨兵，控制器通过errors.Is映射到错误码
var (
	// 校验类错误：在任何网络调用或数据库写入之前返回
	ErrRejectReasonRequired = errors.New("驳回预警必须提供原因代码")
	ErrRejectReasonInvalid  = errors.New("驳回原因代码不在枚举范围内")

	// 状态类错误
	ErrAlertNotFound        = errors.New("预警不存在")
	ErrAlertAlreadyResolved = errors.New("预警已处于终态，不允许重复决策")
	ErrDecisionInFlight     = errors.New("该预警已有决策请求处理中")

	ErrPropertyNotFound  = errors.New("物业不存在")
	ErrCommitteeNotFound = errors.New("委员会不存在")
	ErrDocumentNotFound  = errors.New("文档不存在")
)

// UpstreamError 表示上游决策服务调用失败。本地状态保持不变，调用方可以重试
type UpstreamError struct {
	Endpoint string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("上游决策服务调用失败 [%s]: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
