package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avolkov/condsim/internal/radial"
	"github.com/avolkov/condsim/internal/solver"
)

// ExportData is the flat JSON form of a finished run, suitable for
// downstream plotting outside this tool.
type ExportData struct {
	Pumping       string             `json:"pumping"`
	Dt            float64            `json:"dt"`
	Dx            float64            `json:"dx"`
	Steps         int                `json:"steps"`
	R             []float64          `json:"r"`
	Re            []float64          `json:"re"`
	Im            []float64          `json:"im"`
	Density       []float64          `json:"density"`
	CenterDensity []float64          `json:"center_density"`
	Metrics       map[string]float64 `json:"metrics"`
}

func buildExport(pumpingName string, g radial.Grid, dt float64, result *solver.Result) ExportData {
	x := result.Final.Pack()
	n := x.Nodes()

	data := ExportData{
		Pumping:       pumpingName,
		Dt:            dt,
		Dx:            g.H,
		Steps:         result.StepsTaken,
		R:             g.Coords(),
		Re:            make([]float64, n),
		Im:            make([]float64, n),
		Density:       x.Density(make([]float64, n)),
		CenterDensity: result.CenterDensity,
		Metrics:       result.Metrics,
	}
	copy(data.Re, x.Re())
	copy(data.Im, x.Im())
	return data
}

func ExportJSON(w io.Writer, pumpingName string, g radial.Grid, dt float64, result *solver.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(pumpingName, g, dt, result))
}

func ExportJSONFile(path, pumpingName string, g radial.Grid, dt float64, result *solver.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, pumpingName, g, dt, result)
}

// ProfileSVG renders a radial profile as a simple SVG polyline, dark
// background with a single stroke color.
func ProfileSVG(r, values []float64, width, height int, strokeColor string) string {
	if len(r) < 2 || len(r) != len(values) {
		return ""
	}

	minX, maxX := r[0], r[len(r)-1]
	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range r {
		x := (r[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
