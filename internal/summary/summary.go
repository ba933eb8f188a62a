// Package summary renders a plain-text report of a kernel render, in the
// manner of the teacher's export.LabelInfo/fmt.Sprintf formatting idiom,
// without pulling in the PDF/QR-code stack that produces those labels.
package summary

import (
	"fmt"
	"strings"

	"github.com/mtimmerm/gearcutter/internal/kernel"
	"github.com/mtimmerm/gearcutter/internal/toolpath"
)

// Info holds the fields reported for one render, mirroring the teacher's
// LabelInfo-style flat metadata struct.
type Info struct {
	RunID       string
	NTeeth      int
	PitchRadius float64
	ArcCount    int
	MinRadius   float64
	MaxRadius   float64
	PathLength  float64
}

// FromResult collects the reportable fields of a kernel.RenderResult plus
// the gear parameters that produced it and a toolpath length estimate.
func FromResult(props kernel.GearProps, result kernel.RenderResult, path toolpath.Estimate) Info {
	return Info{
		RunID:       result.RunID.String(),
		NTeeth:      props.NTeeth,
		PitchRadius: props.PitchRadius,
		ArcCount:    result.ArcCount,
		MinRadius:   result.MinRadius,
		MaxRadius:   result.MaxRadius,
		PathLength:  path.LengthModuleUnits,
	}
}

// Text renders Info as a short plain-text block suitable for a console or
// a sidecar .txt file next to the rendered DXF/SVG.
func (i Info) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run:          %s\n", i.RunID)
	fmt.Fprintf(&b, "Teeth:        %d\n", i.NTeeth)
	fmt.Fprintf(&b, "Pitch radius: %.4f module units\n", i.PitchRadius)
	fmt.Fprintf(&b, "Arcs:         %d\n", i.ArcCount)
	fmt.Fprintf(&b, "Radius range: %.4f - %.4f module units\n", i.MinRadius, i.MaxRadius)
	fmt.Fprintf(&b, "Path length:  %.4f module units\n", i.PathLength)
	return b.String()
}
