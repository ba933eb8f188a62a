// Package rack builds the straight-sided rack cutter profile that the gear
// cutter rolls against the blank.
package rack

import (
	"math"

	"github.com/mtimmerm/gearcutter/internal/pen"
)

// RackProps is the rack's geometric configuration, in module units (module
// normalized to 1; callers scale the rendered output afterward).
type RackProps struct {
	ContactRatio      float64 // average tooth pairs in contact, 1.0-2.5
	PressureAngleDeg  float64 // degrees
	ProfileShift      float64 // % of module
	BalancePercent    float64 // 0-100; 50 = symmetric teeth
	BalanceAbsPercent float64 // thickness offset, % of module, for backlash
	TopClrPercent     float64 // top clearance, % of module
	BotClrPercent     float64 // bottom clearance, % of module
	Internal          bool    // internal (ring) gear: swap balance/clearance/backlash sign
}

// DefaultRackProps returns the conventional defaults: 20 degree pressure
// angle, 1.5 contact ratio, symmetric teeth, no shift, clearance 0.15, no
// backlash.
func DefaultRackProps() RackProps {
	return RackProps{
		ContactRatio:      1.5,
		PressureAngleDeg:  20,
		ProfileShift:      0,
		BalancePercent:    50,
		BalanceAbsPercent: 0,
		TopClrPercent:     0.15,
		BotClrPercent:     0.15,
	}
}

// Build emits one pitch of the rack cutting outline — one tooth gap — as
// four straight edges (moveTo then four arcTos with turn 0): left flank, top
// land, right flank, bottom land. Teeth extend along +y; pitch advances
// along +x with period 1 module-unit, so the final vertex is the first
// shifted by (1, 0).
func Build(dst pen.Pen, p RackProps) {
	props := p
	if props.Internal {
		props.BalancePercent = 100 - props.BalancePercent
		props.TopClrPercent, props.BotClrPercent = props.BotClrPercent, props.TopClrPercent
		props.BalanceAbsPercent = -props.BalanceAbsPercent
	}

	alpha := props.PressureAngleDeg * math.Pi / 180
	sinA, cosA, tanA := math.Sin(alpha), math.Cos(alpha), math.Tan(alpha)
	_ = cosA

	ah := props.ContactRatio * sinA * cosA
	centerY := props.ProfileShift / (100 * math.Pi)
	freew := 0.5 - ah*tanA
	// bkw is a uniform x-shift of the whole tooth profile within its period
	// cell: since the next period's left edge is a fixed +1 advance from
	// this call's own xBotLeft (unaffected by the shift below), moving this
	// gap's vertices all by the same bkw widens the gap on one side of the
	// period boundary and narrows it on the other, rather than symmetrically
	// thinning this one tooth.
	bkw := props.BalanceAbsPercent / (200 * math.Pi)
	centerX := -(props.BalancePercent-50)/100*freew - 0.25 + bkw

	topClr := props.TopClrPercent / 100
	botClr := props.BotClrPercent / 100

	yBot := centerY - ah - botClr
	yTop := centerY + ah + topClr

	botHalfWidth := freew/2 + ah*tanA
	topHalfWidth := freew/2 - ah*tanA

	xBotLeft := centerX - botHalfWidth
	xTopLeft := centerX - topHalfWidth
	xTopRight := centerX + topHalfWidth
	xBotRight := centerX + botHalfWidth

	dst.MoveTo(xBotLeft, yBot)
	dst.ArcTo(xTopLeft, yTop, 0)
	dst.ArcTo(xTopRight, yTop, 0)
	dst.ArcTo(xBotRight, yBot, 0)
	dst.ArcTo(xBotLeft+1, yBot, 0)
}
