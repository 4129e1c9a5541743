// Package playarea describes the tracked space a VR user can physically walk
// in, and builds the meshes that visualise it: a fading border around the
// play area and a small cylinder marking the player's feet.
package playarea

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/mesh"
)

var log = logging.MustGetLogger("teleportarea:playarea")

func init() {
	logging.SetLevel(logging.WARNING, "teleportarea:playarea")
}

const (
	DefaultPlayerSlices    = 16
	DefaultPlayerRadius    = 0.2
	DefaultPlayerHeight    = 0.1
	DefaultBorderThickness = 0.15

	// Border vertices float this far above the floor
	borderLift = 0.01
)

// ErrNotCalibrated is returned when the tracking system has no play area.
var ErrNotCalibrated = errors.New("play area is not calibrated")

type Size int

const (
	Calibrated Size = iota
	Size400x300
	Size300x225
	Size200x150
)

var sizeNames = [...]string{"calibrated", "400x300", "300x225", "200x150"}

func (s Size) String() string {
	if s < 0 || int(s) >= len(sizeNames) {
		return "Size(" + strconv.Itoa(int(s)) + ")"
	}
	return sizeNames[s]
}

func ParseSize(s string) (Size, error) {
	for i, name := range sizeNames {
		if strings.EqualFold(s, name) {
			return Size(i), nil
		}
	}
	return 0, errors.Errorf("unknown play area size %q", s)
}

// Rect is a play area given by its four floor corners, in order around the
// area.
type Rect [4]mesh.Vec3

// Chaperone is the tracking system's view of the calibrated play area.
type Chaperone interface {
	// PlayAreaRect reports the calibrated rectangle, or false if there is none.
	PlayAreaRect() (Rect, bool)
	CalibrationOK() bool
}

// ChaperoneSource hands out the chaperone once the tracking system is up. It
// returns nil until then.
type ChaperoneSource interface {
	Chaperone() Chaperone
}

// Bounds returns the play area rectangle for size. Fixed sizes are centred on
// the origin, while Calibrated asks the chaperone.
func Bounds(size Size, chaperone Chaperone) (Rect, error) {
	if size == Calibrated {
		if chaperone == nil {
			return Rect{}, ErrNotCalibrated
		}
		rect, ok := chaperone.PlayAreaRect()
		if !ok {
			log.Warning("Failed to get calibrated play area bounds. Make sure you have tracking first, and that your space is calibrated.")
			return Rect{}, ErrNotCalibrated
		}
		return rect, nil
	}

	x, z, err := halfExtents(size)
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		{X: x, Z: z},
		{X: x, Z: -z},
		{X: -x, Z: -z},
		{X: -x, Z: z},
	}, nil
}

// Half size in meters, parsed from the size name in centimeters.
func halfExtents(size Size) (x, z float64, err error) {
	parts := strings.SplitN(size.String(), "x", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("play area size %s has no fixed extents", size)
	}
	if x, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, errors.Wrapf(err, "play area size %s", size)
	}
	if z, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, errors.Wrapf(err, "play area size %s", size)
	}
	return x / 200, z / 200, nil
}

// WaitCalibrated polls src until a chaperone is available and reports a good
// calibration.
func WaitCalibrated(ctx context.Context, src ChaperoneSource, interval time.Duration) (Chaperone, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if chaperone := src.Chaperone(); chaperone != nil && chaperone.CalibrationOK() {
			return chaperone, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// PlayerPosition projects a tracked head position onto the floor.
func PlayerPosition(head mesh.Vec3) mesh.Vec3 {
	return mesh.Vec3{X: head.X, Z: head.Z}
}
