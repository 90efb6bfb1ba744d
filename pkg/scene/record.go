// Package scene loads box descriptions and keeps the named objects of a
// cubeview scene.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	// ErrMalformedRecord is returned when a description entry is missing a
	// required field or has the wrong shape.
	ErrMalformedRecord = errors.New("malformed object record")

	// ErrUnknownObject is returned when a name is requested that the
	// description does not contain.
	ErrUnknownObject = errors.New("unknown object")
)

// Record is one resolved object entry from a scene description.
// Rotation is in degrees, as written in the file. Colour channels are kept
// as read; values outside 0-255 are not rejected.
type Record struct {
	X, Y, Z                         float64
	ScaleX, ScaleY, ScaleZ          float64
	RotationX, RotationY, RotationZ float64
	Red, Green, Blue, Alpha         float64
}

// rawRecord mirrors the on-disk fields. Pointers tell "absent" from zero.
type rawRecord struct {
	X         *float64 `json:"X" yaml:"X"`
	Y         *float64 `json:"Y" yaml:"Y"`
	Z         *float64 `json:"Z" yaml:"Z"`
	Scale     *float64 `json:"Scale" yaml:"Scale"`
	ScaleX    *float64 `json:"ScaleX" yaml:"ScaleX"`
	ScaleY    *float64 `json:"ScaleY" yaml:"ScaleY"`
	ScaleZ    *float64 `json:"ScaleZ" yaml:"ScaleZ"`
	RotationX *float64 `json:"RotationX" yaml:"RotationX"`
	RotationY *float64 `json:"RotationY" yaml:"RotationY"`
	RotationZ *float64 `json:"RotationZ" yaml:"RotationZ"`
	Red       *float64 `json:"Red" yaml:"Red"`
	Green     *float64 `json:"Green" yaml:"Green"`
	Blue      *float64 `json:"Blue" yaml:"Blue"`
	Alpha     *float64 `json:"Alpha" yaml:"Alpha"`
}

// resolve applies defaults and checks required fields.
func (r rawRecord) resolve(name string) (Record, error) {
	missing := func(field string) error {
		return fmt.Errorf("%w: %q has no %s", ErrMalformedRecord, name, field)
	}

	if r.X == nil {
		return Record{}, missing("X")
	}
	if r.Y == nil {
		return Record{}, missing("Y")
	}

	rec := Record{
		X:         *r.X,
		Y:         *r.Y,
		Z:         orDefault(r.Z, 0),
		RotationX: orDefault(r.RotationX, 0),
		RotationY: orDefault(r.RotationY, 0),
		RotationZ: orDefault(r.RotationZ, 0),
		Alpha:     orDefault(r.Alpha, 255),
	}

	// A uniform Scale fills any per-axis value that is not given.
	switch {
	case r.ScaleX != nil && r.ScaleY != nil && r.ScaleZ != nil:
		rec.ScaleX, rec.ScaleY, rec.ScaleZ = *r.ScaleX, *r.ScaleY, *r.ScaleZ
	case r.Scale != nil:
		rec.ScaleX = orDefault(r.ScaleX, *r.Scale)
		rec.ScaleY = orDefault(r.ScaleY, *r.Scale)
		rec.ScaleZ = orDefault(r.ScaleZ, *r.Scale)
	default:
		return Record{}, missing("Scale or ScaleX/ScaleY/ScaleZ")
	}

	for _, ch := range []struct {
		field string
		src   *float64
		dst   *float64
	}{
		{"Red", r.Red, &rec.Red},
		{"Green", r.Green, &rec.Green},
		{"Blue", r.Blue, &rec.Blue},
	} {
		if ch.src == nil {
			return Record{}, missing(ch.field)
		}
		*ch.dst = *ch.src
	}

	return rec, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Color returns the record colour. Out-of-range channels wrap like an 8-bit
// store would; they show up as odd colours, not as errors.
func (r Record) Color() color.RGBA {
	return color.RGBA{
		R: channel(r.Red),
		G: channel(r.Green),
		B: channel(r.Blue),
		A: channel(r.Alpha),
	}
}

func channel(v float64) uint8 {
	return uint8(int64(math.Round(v)))
}
