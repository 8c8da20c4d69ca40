package game

import (
	"time"

	"matchmill/internal/textutil"
)

// Display prefixes the recognizer reads in front of map and mode names.
const (
	MapPrefix  = "map"
	ModePrefix = "standard"
)

// Maps lists the built-in map names.
var Maps = []string{"ascent", "bind", "haven", "split", "icebox"}

// Modes lists the built-in game modes.
var Modes = []string{"unrated", "competitive", "spike rush", "deathmatch", "custom"}

// MapVocabulary returns the vocabulary for names, or the built-in maps when
// names is empty.
func MapVocabulary(names []string) textutil.Vocabulary {
	if len(names) == 0 {
		names = Maps
	}
	return textutil.NewVocabulary(MapPrefix, names...)
}

// ModeVocabulary returns the vocabulary for names, or the built-in modes when
// names is empty.
func ModeVocabulary(names []string) textutil.Vocabulary {
	if len(names) == 0 {
		names = Modes
	}
	return textutil.NewVocabulary(ModePrefix, names...)
}

// SeasonModeID classifies a mode: custom games are -1, unrated 0 and
// everything else 1.
func SeasonModeID(mode string) int {
	switch mode {
	case "custom":
		return -1
	case "unrated":
		return 0
	default:
		return 1
	}
}

// ClientVersion is one published game client release.
type ClientVersion struct {
	Name      string
	Published time.Time
}

var nzt = time.FixedZone("NZT", 12*60*60)

// ClientVersions lists known releases in publish order.
var ClientVersions = []ClientVersion{
	{Name: "00.00.0-beta", Published: time.Date(2020, time.January, 1, 1, 0, 0, 0, time.UTC)},
	{Name: "01.00.0", Published: time.Date(2020, time.June, 2, 1, 0, 0, 0, time.UTC)},
	{Name: "01.01.0", Published: time.Date(2020, time.June, 10, 4, 11, 0, 0, nzt)},
}

// VersionAt returns the latest release published before t. Times before
// the first release map to the first release.
func VersionAt(t time.Time) string {
	current := ClientVersions[0].Name
	for _, v := range ClientVersions {
		if !v.Published.Before(t) {
			break
		}
		current = v.Name
	}
	return current
}

// TimeFromSeconds converts a sample timestamp in Unix seconds to a time.
func TimeFromSeconds(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
