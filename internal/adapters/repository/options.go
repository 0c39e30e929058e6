// Package repository loads the launch records table and holds it in memory.
package repository

// Option applies a configuration option to the CSV loader.
type Option func(*loader)

// WithComma sets the field delimiter. Zero keeps the default ','.
func WithComma(comma rune) Option {
	return func(l *loader) {
		if comma != 0 {
			l.comma = comma
		}
	}
}

// WithColumns overrides the header names the loader looks for.
// Empty fields keep their defaults.
func WithColumns(cols Columns) Option {
	return func(l *loader) {
		if cols.Site != "" {
			l.columns.Site = cols.Site
		}
		if cols.PayloadMass != "" {
			l.columns.PayloadMass = cols.PayloadMass
		}
		if cols.Class != "" {
			l.columns.Class = cols.Class
		}
		if cols.BoosterVersion != "" {
			l.columns.BoosterVersion = cols.BoosterVersion
		}
		if cols.FlightNumber != "" {
			l.columns.FlightNumber = cols.FlightNumber
		}
		if cols.BoosterCategory != "" {
			l.columns.BoosterCategory = cols.BoosterCategory
		}
	}
}
