package views

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

var colorMaps = map[string]func() palette.ColorMap{
	"extended":  moreland.ExtendedBlackBody,
	"blackbody": moreland.BlackBody,
	"kindlmann": moreland.Kindlmann,
	"bluered": func() palette.ColorMap {
		return moreland.SmoothBlueRed()
	},
	"heat": func() palette.ColorMap {
		return newDiscreteMap(palette.Heat(256, 1).Colors())
	},
}

// ColorMapNames lists the colormap names this package can draw.
func ColorMapNames() []string {
	names := make([]string, 0, len(colorMaps))
	for n := range colorMaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewColorMap returns the named colormap spanning [min, max]. An empty name
// selects "extended".
func NewColorMap(name string, min, max float64) (palette.ColorMap, error) {
	if name == "" {
		name = "extended"
	}
	mk, ok := colorMaps[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q (want one of %s)", name, strings.Join(ColorMapNames(), ", "))
	}
	if !(max > min) {
		max = min + 1e-6
	}
	cm := mk()
	cm.SetMin(min)
	cm.SetMax(max)
	return cm, nil
}

// colorAt looks up v, clamping it into the map's range first.
func colorAt(cm palette.ColorMap, v float64) color.Color {
	v = max(cm.Min(), min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return color.Black
	}
	return c
}

// discreteMap adapts a fixed palette to the ColorMap interface.
type discreteMap struct {
	colors   []color.Color
	min, max float64
	alpha    float64
}

func newDiscreteMap(colors []color.Color) *discreteMap {
	return &discreteMap{colors: colors, max: 1, alpha: 1}
}

func (m *discreteMap) At(v float64) (color.Color, error) {
	switch {
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	case len(m.colors) == 0:
		return nil, palette.ErrOverflow
	}
	i := int((v-m.min)/(m.max-m.min)*float64(len(m.colors)-1) + 0.5)
	return m.colors[i], nil
}

func (m *discreteMap) Max() float64       { return m.max }
func (m *discreteMap) Min() float64       { return m.min }
func (m *discreteMap) SetMax(v float64)   { m.max = v }
func (m *discreteMap) SetMin(v float64)   { m.min = v }
func (m *discreteMap) Alpha() float64     { return m.alpha }
func (m *discreteMap) SetAlpha(a float64) { m.alpha = a }

func (m *discreteMap) Palette(n int) palette.Palette {
	out := make(colorList, n)
	for i := range out {
		v := m.min
		if n > 1 {
			v = min(m.max, v+(m.max-m.min)*float64(i)/float64(n-1))
		}
		out[i], _ = m.At(v)
	}
	return out
}

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }
