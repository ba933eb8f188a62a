// gearcutter — involute spur-gear tooth profile generator
//
// Computes one gear tooth as the lower envelope of a rack-cutter sweep and
// renders it as tangent-continuous biarcs, writing the result to a DXF
// file (and optionally an SVG file alongside it).
//
// Build:
//
//	go build -o gearcutter ./cmd/gearcutter
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mtimmerm/gearcutter/internal/dxfout"
	"github.com/mtimmerm/gearcutter/internal/kernel"
	"github.com/mtimmerm/gearcutter/internal/pen/recpen"
	"github.com/mtimmerm/gearcutter/internal/pen/svgpen"
	"github.com/mtimmerm/gearcutter/internal/rack"
	"github.com/mtimmerm/gearcutter/internal/summary"
	"github.com/mtimmerm/gearcutter/internal/toolpath"
)

func main() {
	nTeeth := flag.Int("teeth", 14, "number of gear teeth")
	pressureAngle := flag.Float64("pressure-angle", 20, "pressure angle, degrees")
	contactRatio := flag.Float64("contact-ratio", 1.5, "contact ratio")
	profileShift := flag.Float64("profile-shift", 0, "profile shift, % of module")
	balance := flag.Float64("balance", 50, "tooth-height balance percent (50 = symmetric)")
	topClr := flag.Float64("top-clearance", 0.15, "top clearance, % of module")
	botClr := flag.Float64("bot-clearance", 0.15, "bottom clearance, % of module")
	backlash := flag.Float64("backlash", 0, "thickness offset, % of module")
	internal := flag.Bool("internal", false, "generate an internal (ring) gear rack")
	faceTol := flag.Float64("face-tol", 0.0005, "tooth-face biarc tolerance, module units")
	filletTol := flag.Float64("fillet-tol", 0.005, "fillet biarc tolerance, module units")
	out := flag.String("out", "gear.dxf", "output DXF path")
	svgOut := flag.String("svg", "", "optional output SVG path")
	flag.Parse()

	props := kernel.GearProps{
		Rack: rack.RackProps{
			ContactRatio:      *contactRatio,
			PressureAngleDeg:  *pressureAngle,
			ProfileShift:      *profileShift,
			BalancePercent:    *balance,
			BalanceAbsPercent: *backlash,
			TopClrPercent:     *topClr,
			BotClrPercent:     *botClr,
			Internal:          *internal,
		},
		NTeeth:      *nTeeth,
		PitchRadius: kernel.PitchRadius(*nTeeth),
		FaceTol:     *faceTol,
		FilletTol:   *filletTol,
	}

	rec := recpen.New()
	result := kernel.Render(props, rec)

	dxf := dxfout.New("GEAR")
	rec.Replay(dxf)
	if err := dxf.SaveAs(*out); err != nil {
		log.Fatalf("gearcutter: writing %s: %v", *out, err)
	}

	if *svgOut != "" {
		svg := svgpen.New()
		rec.Replay(svg)
		if err := os.WriteFile(*svgOut, []byte(svg.String(800, 800)), 0o644); err != nil {
			log.Fatalf("gearcutter: writing %s: %v", *svgOut, err)
		}
	}

	info := summary.FromResult(props, result, toolpath.FromRecorder(rec))
	fmt.Print(info.Text())
	fmt.Printf("Wrote %s (run %s)\n", *out, result.RunID)
}
