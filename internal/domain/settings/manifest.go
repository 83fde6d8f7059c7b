package settings

import "encoding/json"

// Manifest is the web app manifest served to browsers
type Manifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	Description     string `json:"description,omitempty"`
	StartURL        string `json:"start_url"`
	Scope           string `json:"scope"`
	Display         string `json:"display"`
	ThemeColor      string `json:"theme_color"`
	BackgroundColor string `json:"background_color"`
	Icons           []Icon `json:"icons"`
}

// Manifest builds the web app manifest from the PWA configuration
func (s *StoreSettings) Manifest() Manifest {
	icons := s.PWA.Icons
	if icons == nil {
		icons = []Icon{}
	}
	return Manifest{
		Name:            s.PWA.Name,
		ShortName:       s.PWA.ShortName,
		Description:     s.PWA.Description,
		StartURL:        s.PWA.StartURL,
		Scope:           "/",
		Display:         string(s.PWA.Display),
		ThemeColor:      s.PWA.ThemeColor,
		BackgroundColor: s.PWA.BackgroundColor,
		Icons:           icons,
	}
}

// ManifestJSON renders the manifest as JSON
func (s *StoreSettings) ManifestJSON() ([]byte, error) {
	return json.Marshal(s.Manifest())
}
