package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 预警相关错误码
	ErrAlertNotFound:         "预警不存在",
	ErrAlertAlreadyResolved:  "预警已审批完成，不允许重复决策",
	ErrAlertDecisionInFlight: "该预警已有决策请求处理中，请稍后再试",
	ErrRejectReasonRequired:  "驳回预警必须提供原因代码",
	ErrRejectReasonInvalid:   "驳回原因代码无效",
	ErrDecisionUpstream:      "上游决策服务调用失败，本地状态未变更",

	// 物业相关错误码
	ErrPropertyNotFound:     "物业不存在",
	ErrPropertyAlreadyExist: "物业已存在",

	// 委员会相关错误码
	ErrCommitteeNotFound: "委员会不存在",

	// 文档相关错误码
	ErrDocumentNotFound:    "文档不存在",
	ErrDocumentFileMissing: "上传请求缺少文件",
	ErrDocumentStoreFailed: "文档保存失败",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",

	// 迁移相关错误码
	ErrMigrationFailed:  "迁移失败",
	ErrConnectionFailed: "连接失败",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 预警相关错误码
	ErrAlertNotFound:         StatusNotFound,
	ErrAlertAlreadyResolved:  StatusConflict,
	ErrAlertDecisionInFlight: StatusConflict,
	ErrRejectReasonRequired:  StatusBadRequest,
	ErrRejectReasonInvalid:   StatusBadRequest,
	ErrDecisionUpstream:      StatusBadGateway,

	// 物业相关错误码
	ErrPropertyNotFound:     StatusNotFound,
	ErrPropertyAlreadyExist: StatusBadRequest,

	// 委员会相关错误码
	ErrCommitteeNotFound: StatusNotFound,

	// 文档相关错误码
	ErrDocumentNotFound:    StatusNotFound,
	ErrDocumentFileMissing: StatusBadRequest,
	ErrDocumentStoreFailed: StatusInternalServerError,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// 迁移相关错误码
	ErrMigrationFailed:  StatusInternalServerError,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage 返回错误码对应的消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 返回错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
