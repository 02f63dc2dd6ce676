// seehuhn.de/go/rastervis - a raster algorithm visualizer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package session

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/source"
)

// DefaultHeaders is the table header shown before any step was taken.
var DefaultHeaders = []string{"Step Data"}

// Panel collects the textual output of playback: the step table, the info
// fields, the slope readout and a status line.
type Panel struct {
	headers []string
	rows    [][]string
	info    []source.Field
	slope   string
	status  string
}

var _ playback.Reporter = (*Panel)(nil)

// NewPanel returns an empty panel.
func NewPanel() *Panel {
	p := &Panel{slope: source.SlopeNone, status: playback.StatusIdle}
	p.Clear()
	return p
}

// Clear empties the table and the info fields.
func (p *Panel) Clear() {
	p.headers = DefaultHeaders
	p.rows = nil
	p.info = nil
}

// AppendRow adds a row to the table. A row with different headers starts
// a new table.
func (p *Panel) AppendRow(row source.Row) {
	if !slices.Equal(row.Headers, p.headers) {
		p.headers = slices.Clone(row.Headers)
		p.rows = nil
	}
	p.rows = append(p.rows, slices.Clone(row.Values))
}

// SetInfo replaces the info fields.
func (p *Panel) SetInfo(fields []source.Field) { p.info = slices.Clone(fields) }

// SetSlope sets the slope readout.
func (p *Panel) SetSlope(s string) { p.slope = s }

// SetStatus sets the status line.
func (p *Panel) SetStatus(msg string) { p.status = msg }

// Headers returns the column headers of the table.
func (p *Panel) Headers() []string { return p.headers }

// Rows returns the table rows. The result must not be modified.
func (p *Panel) Rows() [][]string { return p.rows }

// Info returns the info fields of the last step.
func (p *Panel) Info() []source.Field { return p.info }

// Slope returns the slope readout.
func (p *Panel) Slope() string { return p.slope }

// Status returns the status line.
func (p *Panel) Status() string { return p.status }

// WriteTable writes the step table with aligned columns.
func (p *Panel) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(p.headers, "\t")+"\t")
	for _, row := range p.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing step table: %w", err)
	}
	return nil
}

// WriteInfo writes the info fields, the slope and the status, one per
// line.
func (p *Panel) WriteInfo(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for _, f := range p.info {
		if f.Name == source.SlopeField {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", f.Name, f.Value)
	}
	fmt.Fprintf(tw, "slope:\t%s\n", p.slope)
	fmt.Fprintf(tw, "status:\t%s\n", p.status)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing info: %w", err)
	}
	return nil
}
