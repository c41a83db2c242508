package transport

// BizCode 响应体 code 字段，0 表示成功；1~499 是业务拒绝，>=500 是系统错误。
type BizCode int

const (
	OK           BizCode = 0
	BadRequest   BizCode = 400
	NotFound     BizCode = 404
	Conflict     BizCode = 409
	SystemError  BizCode = 500
	Unavailable  BizCode = 503
	RequestLimit BizCode = 504
)

// Response 统一响应体。
type Response struct {
	Code BizCode `json:"code"`
	Msg  string  `json:"msg"`
	Data any     `json:"data,omitempty"`
}
