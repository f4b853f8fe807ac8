package app

import (
	"fmt"
	"strings"
)

// DefaultBannerHeading is the gathering name shown under the round number.
const DefaultBannerHeading = "공주사랑중보기도회"

// Banner holds the service information shown on the title screen.
type Banner struct {
	Round   string
	Speaker string
	Passage string
	Title   string
}

func orSpace(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return " "
	}
	return s
}

// Render lays out the banner. Blank fields render as a single space.
func (b Banner) Render(heading string) string {
	return fmt.Sprintf("제 %s 차\n%s\n\n강사: %s\n성경: %s\n제목: %s",
		orSpace(b.Round), heading, orSpace(b.Speaker), orSpace(b.Passage), orSpace(b.Title))
}

// String renders the banner with DefaultBannerHeading.
func (b Banner) String() string {
	return b.Render(DefaultBannerHeading)
}
