package engine

import (
	"fmt"

	"github.com/wippyai/xlsx-bridge/fault"
)

// Sheet dimensions.
const (
	MaxRows    = 1048576
	MaxColumns = 16384
)

// BorderStyle is the line style of one border edge.
type BorderStyle int32

const (
	BorderNone BorderStyle = iota
	BorderHair
	BorderDotted
	BorderDashDot
	BorderThin
	BorderDashDotDot
	BorderDashed
	BorderMediumDashDotDot
	BorderMediumDashed
	BorderMediumDashDot
	BorderThick
	BorderMedium
	BorderDouble
)

// excelize border style indexes
var borderStyles = [...]int{
	BorderNone:             0,
	BorderHair:             7,
	BorderDotted:           4,
	BorderDashDot:          9,
	BorderThin:             1,
	BorderDashDotDot:       11,
	BorderDashed:           3,
	BorderMediumDashDotDot: 12,
	BorderMediumDashed:     8,
	BorderMediumDashDot:    10,
	BorderThick:            5,
	BorderMedium:           2,
	BorderDouble:           6,
}

func (s BorderStyle) excelize() (int, error) {
	if s < 0 || int(s) >= len(borderStyles) {
		return 0, fault.NewArgumentOutOfRange("style", int32(s), "unknown border style %d", int32(s))
	}
	return borderStyles[s], nil
}

// FillPattern is the pattern of a cell fill.
type FillPattern int32

const (
	FillNone FillPattern = iota
	FillSolid
	FillDarkGray
	FillMediumGray
	FillLightGray
	FillGray125
	FillGray0625
	FillDarkVertical
	FillDarkHorizontal
	FillDarkDown
	FillDarkUp
	FillDarkGrid
	FillDarkTrellis
	FillLightVertical
	FillLightHorizontal
	FillLightDown
	FillLightUp
	FillLightGrid
	FillLightTrellis
)

// excelize fill pattern indexes
var fillPatterns = [...]int{
	FillNone:            0,
	FillSolid:           1,
	FillDarkGray:        3,
	FillMediumGray:      2,
	FillLightGray:       4,
	FillGray125:         17,
	FillGray0625:        18,
	FillDarkVertical:    6,
	FillDarkHorizontal:  5,
	FillDarkDown:        7,
	FillDarkUp:          8,
	FillDarkGrid:        9,
	FillDarkTrellis:     10,
	FillLightVertical:   12,
	FillLightHorizontal: 11,
	FillLightDown:       13,
	FillLightUp:         14,
	FillLightGrid:       15,
	FillLightTrellis:    16,
}

func (p FillPattern) excelize() (int, error) {
	if p < 0 || int(p) >= len(fillPatterns) {
		return 0, fault.NewArgumentOutOfRange("patternType", int32(p), "unknown fill pattern %d", int32(p))
	}
	return fillPatterns[p], nil
}

// HorizontalAlignment of cell content.
type HorizontalAlignment int32

const (
	HorizontalGeneral HorizontalAlignment = iota
	HorizontalLeft
	HorizontalCenter
	HorizontalCenterContinuous
	HorizontalRight
	HorizontalFill
	HorizontalDistributed
	HorizontalJustify
)

var horizontalNames = [...]string{
	HorizontalGeneral:          "general",
	HorizontalLeft:             "left",
	HorizontalCenter:           "center",
	HorizontalCenterContinuous: "centerContinuous",
	HorizontalRight:            "right",
	HorizontalFill:             "fill",
	HorizontalDistributed:      "distributed",
	HorizontalJustify:          "justify",
}

func (a HorizontalAlignment) excelize() (string, error) {
	if a < 0 || int(a) >= len(horizontalNames) {
		return "", fault.NewArgumentOutOfRange("horizontalAlignment", int32(a), "unknown horizontal alignment %d", int32(a))
	}
	return horizontalNames[a], nil
}

// VerticalAlignment of cell content.
type VerticalAlignment int32

const (
	VerticalTop VerticalAlignment = iota
	VerticalCenter
	VerticalBottom
	VerticalDistributed
	VerticalJustify
)

var verticalNames = [...]string{
	VerticalTop:         "top",
	VerticalCenter:      "center",
	VerticalBottom:      "bottom",
	VerticalDistributed: "distributed",
	VerticalJustify:     "justify",
}

func (a VerticalAlignment) excelize() (string, error) {
	if a < 0 || int(a) >= len(verticalNames) {
		return "", fault.NewArgumentOutOfRange("verticalAlignment", int32(a), "unknown vertical alignment %d", int32(a))
	}
	return verticalNames[a], nil
}

// rgb drops the alpha channel of an ARGB value.
func rgb(argb int32) string {
	return fmt.Sprintf("%06X", uint32(argb)&0xFFFFFF)
}
