package xlsx

import "github.com/wippyai/xlsx-bridge/engine"

type (
	BorderStyle         = engine.BorderStyle
	FillPattern         = engine.FillPattern
	HorizontalAlignment = engine.HorizontalAlignment
	VerticalAlignment   = engine.VerticalAlignment
)

const (
	BorderNone             = engine.BorderNone
	BorderHair             = engine.BorderHair
	BorderDotted           = engine.BorderDotted
	BorderDashDot          = engine.BorderDashDot
	BorderThin             = engine.BorderThin
	BorderDashDotDot       = engine.BorderDashDotDot
	BorderDashed           = engine.BorderDashed
	BorderMediumDashDotDot = engine.BorderMediumDashDotDot
	BorderMediumDashed     = engine.BorderMediumDashed
	BorderMediumDashDot    = engine.BorderMediumDashDot
	BorderThick            = engine.BorderThick
	BorderMedium           = engine.BorderMedium
	BorderDouble           = engine.BorderDouble
)

const (
	FillNone            = engine.FillNone
	FillSolid           = engine.FillSolid
	FillDarkGray        = engine.FillDarkGray
	FillMediumGray      = engine.FillMediumGray
	FillLightGray       = engine.FillLightGray
	FillGray125         = engine.FillGray125
	FillGray0625        = engine.FillGray0625
	FillDarkVertical    = engine.FillDarkVertical
	FillDarkHorizontal  = engine.FillDarkHorizontal
	FillDarkDown        = engine.FillDarkDown
	FillDarkUp          = engine.FillDarkUp
	FillDarkGrid        = engine.FillDarkGrid
	FillDarkTrellis     = engine.FillDarkTrellis
	FillLightVertical   = engine.FillLightVertical
	FillLightHorizontal = engine.FillLightHorizontal
	FillLightDown       = engine.FillLightDown
	FillLightUp         = engine.FillLightUp
	FillLightGrid       = engine.FillLightGrid
	FillLightTrellis    = engine.FillLightTrellis
)

const (
	HorizontalGeneral          = engine.HorizontalGeneral
	HorizontalLeft             = engine.HorizontalLeft
	HorizontalCenter           = engine.HorizontalCenter
	HorizontalCenterContinuous = engine.HorizontalCenterContinuous
	HorizontalRight            = engine.HorizontalRight
	HorizontalFill             = engine.HorizontalFill
	HorizontalDistributed      = engine.HorizontalDistributed
	HorizontalJustify          = engine.HorizontalJustify
)

const (
	VerticalTop         = engine.VerticalTop
	VerticalCenter      = engine.VerticalCenter
	VerticalBottom      = engine.VerticalBottom
	VerticalDistributed = engine.VerticalDistributed
	VerticalJustify     = engine.VerticalJustify
)
