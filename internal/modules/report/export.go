package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hoteldash/internal/source"
)

const (
	sheetSummary     = "Summary"
	sheetRecent      = "Recent Reservations"
	sheetCollections = "Collections"
	sheetRooms       = "Rooms"
)

// WriteWorkbook writes one sheet per report section to w.
func WriteWorkbook(w io.Writer, d DashboardView, rooms Rooms, degraded []source.DegradedSource) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	summary := [][]any{
		{"Metric", "Value"},
		{"From", d.FromDate},
		{"To", d.ToDate},
		{"Days in range", d.DaysInRange},
		{"Occupied rooms", d.OccupiedRooms},
		{"Total rooms", d.TotalRooms},
		{"Occupancy rate (%)", d.OccupancyRate},
		{"Today check-ins", d.TodayCheckIns},
		{"Today check-outs", d.TodayCheckOuts},
		{"Revenue", d.Revenue.InexactFloat64()},
		{"Room nights", d.RoomNights},
		{"ADR", d.ADR.InexactFloat64()},
		{"RevPAR", d.RevPAR.InexactFloat64()},
	}
	for _, ds := range degraded {
		summary = append(summary, []any{"Unavailable: " + ds.Source, ds.Reason})
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}

	recent := [][]any{{"Confirmation", "Guest", "Room", "Check-in", "Check-out", "Nights", "Total", "Status"}}
	for _, r := range d.RecentReservations {
		recent = append(recent, []any{
			r.ConfirmationNumber, r.GuestName, r.RoomNumber, r.CheckInDate, r.CheckOutDate,
			r.Nights, r.TotalAmount.InexactFloat64(), r.Status,
		})
	}
	if err := writeSheet(f, sheetRecent, recent); err != nil {
		return err
	}

	collections := [][]any{{"Method", "Payments", "Amount"}}
	for _, c := range d.Collections {
		collections = append(collections, []any{c.Method, c.Count, c.Amount.InexactFloat64()})
	}
	if err := writeSheet(f, sheetCollections, collections); err != nil {
		return err
	}

	roomRows := [][]any{{"Group", "Key", "Rooms"}}
	for _, c := range rooms.ByStatus {
		roomRows = append(roomRows, []any{"status", c.Key, c.Count})
	}
	for _, c := range rooms.ByType {
		roomRows = append(roomRows, []any{"type", c.Key, c.Count})
	}
	if err := writeSheet(f, sheetRooms, roomRows); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
