package entity

import "strings"

// StreamingPlatform is the closed set of services the app can badge a
// suggestion with. Same rules as MovieGenre: fixed catalog, label gate.
type StreamingPlatform string

const (
	PlatformNetflix     StreamingPlatform = "Netflix"
	PlatformPrimeVideo  StreamingPlatform = "Prime Video"
	PlatformDisneyPlus  StreamingPlatform = "Disney+"
	PlatformMax         StreamingPlatform = "Max"
	PlatformAppleTVPlus StreamingPlatform = "Apple TV+"
	PlatformHulu        StreamingPlatform = "Hulu"
	PlatformParamount   StreamingPlatform = "Paramount+"
	PlatformPeacock     StreamingPlatform = "Peacock"
	PlatformCrunchyroll StreamingPlatform = "Crunchyroll"
	PlatformMubi        StreamingPlatform = "Mubi"
)

var platformCatalog = []StreamingPlatform{
	PlatformNetflix,
	PlatformPrimeVideo,
	PlatformDisneyPlus,
	PlatformMax,
	PlatformAppleTVPlus,
	PlatformHulu,
	PlatformParamount,
	PlatformPeacock,
	PlatformCrunchyroll,
	PlatformMubi,
}

// platformIcons holds the asset name of each brand mark bundled with the
// client.
var platformIcons = map[StreamingPlatform]string{
	PlatformNetflix:     "netflix",
	PlatformPrimeVideo:  "prime-video",
	PlatformDisneyPlus:  "disney-plus",
	PlatformMax:         "max",
	PlatformAppleTVPlus: "apple-tv-plus",
	PlatformHulu:        "hulu",
	PlatformParamount:   "paramount-plus",
	PlatformPeacock:     "peacock",
	PlatformCrunchyroll: "crunchyroll",
	PlatformMubi:        "mubi",
}

func (p StreamingPlatform) Label() string {
	return string(p)
}

func (p StreamingPlatform) Icon() string {
	return platformIcons[p]
}

// Platforms returns the full catalog in display order.
func Platforms() []StreamingPlatform {
	out := make([]StreamingPlatform, len(platformCatalog))
	copy(out, platformCatalog)
	return out
}

// PlatformFromLabel resolves a label into a catalog platform,
// case-insensitive.
func PlatformFromLabel(label string) (StreamingPlatform, bool) {
	for _, p := range platformCatalog {
		if strings.EqualFold(label, string(p)) {
			return p, true
		}
	}
	return "", false
}
