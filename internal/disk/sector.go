package disk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// alignment is the space reserved at both ends of a device by the Start and
// End sector specifications.
const alignment uint64 = 2 * 1024 * 1024

// SectorKind selects how a Sector is resolved.
type SectorKind uint8

const (
	SectorStart SectorKind = iota
	SectorEnd
	SectorMegabyte
	SectorMegabyteFromEnd
	SectorUnit
	SectorUnitFromEnd
	SectorPercent
)

// Sector is a symbolic position on a device. It is resolved against a
// device's geometry into an absolute sector index.
type Sector struct {
	Kind  SectorKind
	Value uint64
}

// Start is the first usable sector, 2 MiB into the device.
func Start() Sector { return Sector{Kind: SectorStart} }

// End is the last usable sector, 2 MiB before the end of the device.
func End() Sector { return Sector{Kind: SectorEnd} }

// Megabyte is an absolute offset of n decimal megabytes.
func Megabyte(n uint64) Sector { return Sector{Kind: SectorMegabyte, Value: n} }

// MegabyteFromEnd is n decimal megabytes before End.
func MegabyteFromEnd(n uint64) Sector { return Sector{Kind: SectorMegabyteFromEnd, Value: n} }

// Unit is an absolute sector index.
func Unit(n uint64) Sector { return Sector{Kind: SectorUnit, Value: n} }

// UnitFromEnd is n sectors before End.
func UnitFromEnd(n uint64) Sector { return Sector{Kind: SectorUnitFromEnd, Value: n} }

// Percent is a fraction v/65535 of the device size.
func Percent(v uint16) Sector { return Sector{Kind: SectorPercent, Value: uint64(v)} }

// Resolve computes the absolute sector for a device of the given geometry.
// The result is not bounds checked.
func (s Sector) Resolve(sectors, sectorSize uint64) uint64 {
	end := sectors - alignment/sectorSize
	megabyte := func(n uint64) uint64 { return n * 1_000_000 / sectorSize }

	switch s.Kind {
	case SectorStart:
		return alignment / sectorSize
	case SectorEnd:
		return end
	case SectorMegabyte:
		return megabyte(s.Value)
	case SectorMegabyteFromEnd:
		return end - megabyte(s.Value)
	case SectorUnit:
		return s.Value
	case SectorUnitFromEnd:
		return end - s.Value
	case SectorPercent:
		return sectors * sectorSize / math.MaxUint16 * s.Value / sectorSize
	default:
		panic(fmt.Sprintf("invalid sector kind %d", s.Kind))
	}
}

// GetSector resolves s against the geometry of d.
func GetSector(d Disk, s Sector) uint64 {
	return s.Resolve(d.Sectors(), d.SectorSize())
}

func (s Sector) String() string {
	switch s.Kind {
	case SectorStart:
		return "start"
	case SectorEnd:
		return "end"
	case SectorMegabyte:
		return strconv.FormatUint(s.Value, 10) + "M"
	case SectorMegabyteFromEnd:
		return "-" + strconv.FormatUint(s.Value, 10) + "M"
	case SectorUnit:
		return strconv.FormatUint(s.Value, 10)
	case SectorUnitFromEnd:
		return "-" + strconv.FormatUint(s.Value, 10)
	case SectorPercent:
		return strconv.FormatUint((s.Value*100+math.MaxUint16/2)/math.MaxUint16, 10) + "%"
	default:
		return fmt.Sprintf("Sector(%d)", s.Kind)
	}
}

// ParseSector reads the textual form of a sector specification:
//
//	start, end      the aligned first and last usable sectors
//	N%              N percent of the device, 0 to 100
//	NM              N decimal megabytes
//	2GB, 512MiB     any size humanize understands, rounded down to megabytes
//	N               N sectors
//
// A leading '-' measures megabyte and sector forms back from the end.
func ParseSector(s string) (Sector, error) {
	value := strings.TrimSpace(s)
	switch strings.ToLower(value) {
	case "start":
		return Start(), nil
	case "end":
		return End(), nil
	case "":
		return Sector{}, fmt.Errorf("empty sector specification")
	}

	if pct, ok := strings.CutSuffix(value, "%"); ok {
		n, err := strconv.ParseUint(pct, 10, 64)
		if err != nil || n > 100 {
			return Sector{}, fmt.Errorf("invalid percentage %q", s)
		}
		return Percent(uint16(n * math.MaxUint16 / 100)), nil
	}

	fromEnd := false
	if rest, ok := strings.CutPrefix(value, "-"); ok {
		fromEnd = true
		value = rest
	}

	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		if fromEnd {
			return UnitFromEnd(n), nil
		}
		return Unit(n), nil
	}

	var megabytes uint64
	if mb, ok := strings.CutSuffix(value, "M"); ok {
		n, err := strconv.ParseUint(mb, 10, 64)
		if err != nil {
			return Sector{}, fmt.Errorf("invalid megabyte count %q", s)
		}
		megabytes = n
	} else {
		bytes, err := humanize.ParseBytes(value)
		if err != nil {
			return Sector{}, fmt.Errorf("invalid sector specification %q: %w", s, err)
		}
		megabytes = bytes / 1_000_000
	}

	if fromEnd {
		return MegabyteFromEnd(megabytes), nil
	}
	return Megabyte(megabytes), nil
}
