package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 状态冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusBadGateway - 502: 上游服务错误.
	StatusBadGateway = 502
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 预警相关错误码 (102xxx).
const (
	// ErrAlertNotFound - 404: 预警不存在.
	ErrAlertNotFound int = iota + 102000
	// ErrAlertAlreadyResolved - 409: 预警已处于终态.
	ErrAlertAlreadyResolved
	// ErrAlertDecisionInFlight - 409: 该预警已有决策请求处理中.
	ErrAlertDecisionInFlight
	// ErrRejectReasonRequired - 400: 驳回必须提供原因代码.
	ErrRejectReasonRequired
	// ErrRejectReasonInvalid - 400: 驳回原因代码不在枚举范围内.
	ErrRejectReasonInvalid
	// ErrDecisionUpstream - 502: 上游决策服务调用失败.
	ErrDecisionUpstream
)

// 物业相关错误码 (103xxx).
const (
	// ErrPropertyNotFound - 404: 物业不存在.
	ErrPropertyNotFound int = iota + 103000
	// ErrPropertyAlreadyExist - 400: 物业已存在.
	ErrPropertyAlreadyExist
)

// 委员会相关错误码 (104xxx).
const (
	// ErrCommitteeNotFound - 404: 委员会不存在.
	ErrCommitteeNotFound int = iota + 104000
)

// 文档相关错误码 (105xxx).
const (
	// ErrDocumentNotFound - 404: 文档不存在.
	ErrDocumentNotFound int = iota + 105000
	// ErrDocumentFileMissing - 400: 上传请求缺少文件.
	ErrDocumentFileMissing
	// ErrDocumentStoreFailed - 500: 文档保存失败.
	ErrDocumentStoreFailed
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

// 迁移相关错误码 (109xxx).
const (
	// ErrMigrationFailed - 500: 迁移失败.
	ErrMigrationFailed int = iota + 109000
	// ErrConnectionFailed - 500: 连接失败.
	ErrConnectionFailed
)
