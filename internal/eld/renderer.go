// Package eld renders the driver's daily log sheet as a one-page PDF.
// The layout is fixed-position: every element is drawn at explicit
// coordinates on a Letter page, so output is reproducible for a given trip
// and date.
package eld

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"trip-planner-service/internal/domain"
)

// Page geometry in points (Letter is 612 x 792).
const (
	leftMargin = 72
	gridLeft   = 110
	gridTop    = 200
	hourWidth  = 18  // 24 hours * 18pt = 432pt grid width
	rowHeight  = 26  // one duty-status row
	gridRight  = gridLeft + 24*hourWidth
)

// dutyRows are the four duty-status rows of the 24-hour grid, top to bottom.
var dutyRows = []string{"OFF", "SB", "D", "ON"}

// legend maps each status code to its meaning, drawn below the grid.
var legend = []string{
	"OFF: Off Duty",
	"SB: Sleeper Berth",
	"D: Driving",
	"ON: On Duty (not driving)",
}

// Render produces the ELD log sheet for a trip as PDF bytes.
//
// The grid is a static template: the data model carries no per-hour duty
// events, so no status line is plotted. The recap repeats the trip's cycle
// total on the 70-hour, 60-hour, and today lines — distinguishing those three
// quantities needs an event log the system does not keep.
//
// Output is deterministic for a fixed (trip, date): the PDF creation date is
// pinned to date rather than the wall clock.
func Render(trip domain.Trip, date time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCreationDate(date)
	pdf.AddPage()

	// Header.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(leftMargin, 64, "Driver's Daily ELD Log")

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(leftMargin, 88, "Date: "+date.Format("2006-01-02"))
	pdf.Text(leftMargin, 106, "From: "+trip.PickupLocation)
	pdf.Text(leftMargin, 124, "To: "+trip.DropoffLocation)
	pdf.Text(leftMargin, 142, "Starting at: "+trip.CurrentLocation)

	pdf.SetLineWidth(0.8)
	pdf.Line(leftMargin, 156, 540, 156)

	drawGrid(pdf)
	drawLegend(pdf)
	drawRecap(pdf, trip)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("eld.Render: %w", err)
	}
	return buf.Bytes(), nil
}

// drawGrid draws the 24-hour duty-status grid template: hour labels on top,
// one row per duty status, and a tick for every hour.
func drawGrid(pdf *gofpdf.Fpdf) {
	gridBottom := float64(gridTop + len(dutyRows)*rowHeight)

	// Hour labels every two hours: M, 2, 4, ... 22, M.
	pdf.SetFont("Helvetica", "", 7)
	for h := 0; h <= 24; h += 2 {
		label := fmt.Sprintf("%d", h)
		if h == 0 || h == 24 {
			label = "M" // midnight
		}
		x := float64(gridLeft + h*hourWidth)
		pdf.Text(x-2, gridTop-6, label)
	}

	// Row labels and horizontal rules.
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetLineWidth(0.8)
	for i, status := range dutyRows {
		top := float64(gridTop + i*rowHeight)
		pdf.Text(leftMargin, top+rowHeight/2+3, status)
		pdf.Line(gridLeft, top, gridRight, top)
	}
	pdf.Line(gridLeft, gridBottom, gridRight, gridBottom)

	// Vertical hour lines.
	pdf.SetLineWidth(0.3)
	for h := 0; h <= 24; h++ {
		x := float64(gridLeft + h*hourWidth)
		pdf.Line(x, gridTop, x, gridBottom)
	}
}

// drawLegend writes the duty-status legend in one line below the grid.
func drawLegend(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 9)
	x := float64(leftMargin)
	y := float64(gridTop + len(dutyRows)*rowHeight + 28)
	for _, entry := range legend {
		pdf.Text(x, y, entry)
		x += pdf.GetStringWidth(entry) + 18
	}
}

// drawRecap writes the hours summary block.
func drawRecap(pdf *gofpdf.Fpdf, trip domain.Trip) {
	y := float64(gridTop + len(dutyRows)*rowHeight + 64)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(leftMargin, y, "Recap")

	pdf.SetFont("Helvetica", "", 11)
	used := fmt.Sprintf("%.2f", trip.CurrentCycleUsed)
	remaining := fmt.Sprintf("%.2f", 70-trip.CurrentCycleUsed)
	pdf.Text(leftMargin, y+20, "70 hr / 8 day - hours used: "+used)
	pdf.Text(leftMargin, y+38, "60 hr / 7 day - hours used: "+used)
	pdf.Text(leftMargin, y+56, "On duty hours today: "+used)
	pdf.Text(leftMargin, y+74, "Hours remaining in cycle: "+remaining)
}
