package entity

import "ArmsDealer/modules/kit/errx"

const (
	CodeUnknownCountry      errx.Code = "WAR_UNKNOWN_COUNTRY"
	CodeSelfTarget          errx.Code = "WAR_SELF_TARGET"
	CodeNotAdjacent         errx.Code = "WAR_NOT_ADJACENT"
	CodeAlreadyActive       errx.Code = "WAR_ALREADY_ACTIVE"
	CodeWarNotFound         errx.Code = "WAR_NOT_FOUND"
	CodeUnitNotFound        errx.Code = "WAR_UNIT_NOT_FOUND"
	CodeUnitCountryMismatch errx.Code = "WAR_UNIT_COUNTRY_MISMATCH"
)

var (
	ErrUnknownCountry      = errx.NewBiz(CodeUnknownCountry, "unknown country")
	ErrSelfTarget          = errx.NewBiz(CodeSelfTarget, "country cannot target itself")
	ErrNotAdjacent         = errx.NewBiz(CodeNotAdjacent, "countries are not adjacent")
	ErrAlreadyActive       = errx.NewBiz(CodeAlreadyActive, "war already active")
	ErrWarNotFound         = errx.NewBiz(CodeWarNotFound, "war not found")
	ErrUnitNotFound        = errx.NewBiz(CodeUnitNotFound, "unit not found")
	ErrUnitCountryMismatch = errx.NewBiz(CodeUnitCountryMismatch, "unit belongs to another country")
)
