package http

import (
	"context"
	"errors"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/transport"
	waractor "ArmsDealer/internal/war/actor"
	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
)

const systemBusy = "系统繁忙，请稍后重试"

func mapBizCodeToClientCode(code errx.Code) transport.BizCode {
	switch code {
	case "":
		return transport.OK
	case entity.CodeUnknownCountry, geo.CodeUnknownCountry,
		entity.CodeWarNotFound, entity.CodeUnitNotFound, port.CodeReportNotFound:
		return transport.NotFound
	case entity.CodeAlreadyActive:
		return transport.Conflict
	case entity.CodeSelfTarget, entity.CodeNotAdjacent, entity.CodeUnitCountryMismatch,
		geo.CodeUnknownDirection, errx.CodeReqParamError:
		return transport.BadRequest
	default:
		return transport.BadRequest
	}
}

func mapSysErrToClientCode(err error) transport.BizCode {
	var re *waractor.RuntimeError
	if errors.As(err, &re) {
		return waractor.CodeFromError(err)
	}
	switch errx.CodeOf(err) {
	case errx.CodeUnavailable:
		return transport.Unavailable
	case errx.CodeTimeout:
		return transport.RequestLimit
	default:
		return transport.SystemError
	}
}

// HandleError 业务拒绝透出 msg，系统错误只给通用提示；错误码写进访问日志。
func HandleError(ctx context.Context, err error) (transport.BizCode, string) {
	if err == nil {
		return transport.OK, ""
	}
	code := errx.CodeOf(err)
	if code != "" {
		transport.SetErrorReason(ctx, string(code))
	}

	if e, ok := bizError(err); ok {
		return mapBizCodeToClientCode(e.Code()), e.Msg()
	}
	return mapSysErrToClientCode(err), systemBusy
}

// bizError 链上第一个 errx.Error 是业务错误时返回它。
func bizError(err error) (*errx.Error, bool) {
	var e *errx.Error
	if errors.As(err, &e) && !e.IsSys() {
		return e, true
	}
	return nil, false
}
