package model

// Variant names of Src, in the order the catalog lists them.
const (
	VariantOriginal  = "original"
	VariantLarge2x   = "large2x"
	VariantLarge     = "large"
	VariantMedium    = "medium"
	VariantSmall     = "small"
	VariantPortrait  = "portrait"
	VariantLandscape = "landscape"
	VariantTiny      = "tiny"
)

// Wallpaper is one photo from the catalog. ID is the sole identity key.
type Wallpaper struct {
	ID              int64  `json:"id" validate:"gt=0"`
	Width           int    `json:"width" validate:"gt=0"`
	Height          int    `json:"height" validate:"gt=0"`
	URL             string `json:"url"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
	PhotographerID  int64  `json:"photographer_id"`
	AvgColor        string `json:"avg_color,omitempty"`
	Src             Src    `json:"src"`
	Alt             string `json:"alt,omitempty"`
}

type Src struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Variant returns the URL for a named resolution, or "" if unknown or empty.
func (s Src) Variant(name string) string {
	switch name {
	case VariantOriginal:
		return s.Original
	case VariantLarge2x:
		return s.Large2x
	case VariantLarge:
		return s.Large
	case VariantMedium:
		return s.Medium
	case VariantSmall:
		return s.Small
	case VariantPortrait:
		return s.Portrait
	case VariantLandscape:
		return s.Landscape
	case VariantTiny:
		return s.Tiny
	}
	return ""
}

// Best returns the highest resolution that is set, used for downloads.
func (s Src) Best() string {
	for _, name := range []string{VariantOriginal, VariantLarge2x, VariantLarge, VariantMedium, VariantSmall} {
		if v := s.Variant(name); v != "" {
			return v
		}
	}
	return ""
}

// AspectRatio is height over width; grid tiles are column width times this.
func (w Wallpaper) AspectRatio() float64 {
	if w.Width <= 0 {
		return 0
	}
	return float64(w.Height) / float64(w.Width)
}

// Contains reports whether list holds an entry with the given id.
func Contains(list []Wallpaper, id int64) bool {
	for _, w := range list {
		if w.ID == id {
			return true
		}
	}
	return false
}
