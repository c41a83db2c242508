package geo

import "ArmsDealer/modules/kit/errx"

type Code = errx.Code

const (
	CodeInvalidAtlas     Code = "GEO_INVALID_ATLAS"
	CodeUnknownCountry   Code = "GEO_UNKNOWN_COUNTRY"
	CodeUnknownDirection Code = "GEO_UNKNOWN_DIRECTION"
)

var (
	ErrInvalidAtlas     = errx.NewBiz(CodeInvalidAtlas, "atlas data is inconsistent")
	ErrUnknownCountry   = errx.NewBiz(CodeUnknownCountry, "unknown country")
	ErrUnknownDirection = errx.NewBiz(CodeUnknownDirection, "unknown direction")
)
