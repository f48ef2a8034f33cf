package domain

import "fmt"

// Fade is the closed set of image fading variants. Only this package can
// implement it, so a switch over Opacity35, Opacity45 and Blackout is total.
type Fade interface {
	Opacity() int
	fade()
}

type (
	Opacity35 struct{}
	Opacity45 struct{}
	Blackout  struct{}
)

func (Opacity35) Opacity() int { return 35 }
func (Opacity45) Opacity() int { return 45 }
func (Blackout) Opacity() int  { return 100 }

func (Opacity35) fade() {}
func (Opacity45) fade() {}
func (Blackout) fade()  {}

// ParseOpacity maps a user supplied opacity to its fade variant.
func ParseOpacity(opacity int) (Fade, error) {
	switch opacity {
	case 35:
		return Opacity35{}, nil
	case 45:
		return Opacity45{}, nil
	case 100:
		return Blackout{}, nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOpacity, opacity)
	}
}

// FadedPath is the bucket path for a partially faded edition.
func FadedPath(f Fade, edition int) string {
	return fmt.Sprintf("faded%d/4/%d.jpg", f.Opacity(), edition)
}

// RestoredPath is the canonical image path for an edition at a stage.
func RestoredPath(stage uint8, edition int) string {
	return fmt.Sprintf("images/%d/%d.jpg", stage, edition)
}
