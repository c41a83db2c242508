package messages

import "ArmsDealer/modules/kit/errx"

// FailResp actor 拒绝请求时的统一回包，Err 保留原始 errx 错误供上层映射。
type FailResp struct {
	Code    errx.Code
	Message string
	Err     error
}

func Fail(err error) *FailResp {
	if err == nil {
		err = errx.ErrInternal
	}
	return &FailResp{
		Code:    errx.CodeOf(err),
		Message: err.Error(),
		Err:     err,
	}
}

func (f *FailResp) Error() string {
	if f == nil {
		return "<nil>"
	}
	return f.Message
}

func (f *FailResp) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}
