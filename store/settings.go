package store

// Settings are the player preferences the front-end restores on launch.
type Settings struct {
	StartingLevel int
	Muted         bool
	Volume        float64
}

// DefaultSettings match a fresh install.
var DefaultSettings = Settings{
	StartingLevel: 1,
	Muted:         false,
	Volume:        0.7,
}

// LoadSettings reads the preferences, filling gaps from DefaultSettings.
// Out-of-range values are pulled back into range.
func LoadSettings(s *Safe) Settings {
	out := Settings{
		StartingLevel: s.Int(KeyStartingLevel, DefaultSettings.StartingLevel),
		Muted:         s.Bool(KeyMuted, DefaultSettings.Muted),
		Volume:        s.Float(KeyVolume, DefaultSettings.Volume),
	}
	out.StartingLevel = max(1, min(out.StartingLevel, 15))
	out.Volume = max(0, min(out.Volume, 1))
	return out
}

func SaveSettings(s *Safe, settings Settings) {
	s.SetInt(KeyStartingLevel, settings.StartingLevel)
	s.SetBool(KeyMuted, settings.Muted)
	s.SetFloat(KeyVolume, settings.Volume)
}
