package errx

// 系统类错误码：跨模块统一，用于告警与排障归类。
// 业务/领域错误码由各自的包定义（例如 WAR_NOT_ADJACENT），不在 kit 里集中。
const (
	// CodeInternal 内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（存储、下游 actor 等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 请求或依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeInvalidConfig 配置文件缺失或无法解析。
	CodeInvalidConfig Code = "INVALID_CONFIG"
	// CodeReqParamError 请求参数错误。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

// 哨兵错误：只读，派生请走 WithData/WithCause。
var (
	ErrInternal      = NewSys(CodeInternal, "internal error")
	ErrUnavailable   = NewSys(CodeUnavailable, "service unavailable")
	ErrTimeout       = NewSys(CodeTimeout, "request timeout")
	ErrInvalidConfig = NewSys(CodeInvalidConfig, "invalid config")
	ErrReqParamERR   = NewBiz(CodeReqParamError, "invalid request parameter")
)
