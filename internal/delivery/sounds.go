package delivery

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Sound is one entry in the selectable adhan catalog.
type Sound struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog lists the bundled adhan recordings offered to the host UI.
var Catalog = []Sound{
	{ID: "azan_nasser_elktamy", Name: "الافتراضي (ناصر القطامي)"},
	{ID: "azan_egypt", Name: "آذان 1"},
	{ID: "azan_good", Name: "آذان 2"},
	{ID: "azan_good_2", Name: "آذان 3"},
	{ID: "azan_abdel_baset", Name: "آذان 4"},
}

const (
	// DefaultSoundID is the first fallback when a requested asset is missing.
	DefaultSoundID = "azan"
	// LastResortSoundID is tried when the default is missing too.
	LastResortSoundID = "azan_nasser_elktamy"
)

// Assets locates sound files on the device.
type Assets interface {
	Exists(soundID string) bool
	Path(soundID string) string
}

// DirAssets serves sound files from a directory of <id>.mp3 files.
type DirAssets struct {
	Dir string
}

var _ Assets = (*DirAssets)(nil)

func (a *DirAssets) Path(soundID string) string {
	return filepath.Join(a.Dir, soundID+".mp3")
}

func (a *DirAssets) Exists(soundID string) bool {
	info, err := os.Stat(a.Path(soundID))
	return err == nil && !info.IsDir()
}

// ResolveSound walks the fallback chain requested -> default -> last resort
// and reports whether any asset could be found.
func ResolveSound(assets Assets, requested string) (string, bool) {
	if requested != "" && assets.Exists(requested) {
		return requested, true
	}
	log.Warn().Str("sound_id", requested).Msgf("sound not found, falling back to %q", DefaultSoundID)
	if assets.Exists(DefaultSoundID) {
		return DefaultSoundID, true
	}
	if assets.Exists(LastResortSoundID) {
		return LastResortSoundID, true
	}
	return "", false
}
