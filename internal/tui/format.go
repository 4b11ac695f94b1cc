package tui

import (
	"encoding/hex"
	"fmt"
	"time"
)

// GrothPerBeam is the number of groth in one beam.
const GrothPerBeam = 1_000_000

// ToBeam converts groth to whole beams, truncating toward zero.
func ToBeam(groth int64) int64 {
	return groth / GrothPerBeam
}

// FormatAmount renders groth as whole beams. Fractions are dropped.
func FormatAmount(groth int64, unit string) string {
	return fmt.Sprintf("%d %s", ToBeam(groth), unit)
}

// FormatTime renders t in loc. The zero time renders as a dash.
func FormatTime(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(loc).Format(layout)
}

// ShortID abbreviates an identifier for lists.
func ShortID(id []byte) string {
	s := hex.EncodeToString(id)
	if len(s) <= 12 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}
