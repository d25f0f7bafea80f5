package config

// Theme is the named chrome palette used by the Surface for background,
// default foreground, and cursor colour. The Grid's own SGR colours are
// unaffected by theme; this only dresses up what the grid doesn't paint.
//
// The palette values are fixed at build time; ThemeByName resolves a name
// to one, falling back to a sane default for anything unrecognised.
type Theme struct {
	Name       string
	Background [3]uint8
	Foreground [3]uint8
	Cursor     [3]uint8
}

var themes = map[string]Theme{
	"raven-blue": {
		Name:       "raven-blue",
		Background: [3]uint8{0x0c, 0x14, 0x22},
		Foreground: [3]uint8{0xd8, 0xe4, 0xf0},
		Cursor:     [3]uint8{0x4f, 0x9c, 0xff},
	},
	"crow-black": {
		Name:       "crow-black",
		Background: [3]uint8{0x0a, 0x0a, 0x0a},
		Foreground: [3]uint8{0xe0, 0xe0, 0xe0},
		Cursor:     [3]uint8{0xf0, 0xf0, 0xf0},
	},
	"magpie-black-white-grey": {
		Name:       "magpie-black-white-grey",
		Background: [3]uint8{0x1a, 0x1a, 0x1a},
		Foreground: [3]uint8{0xf5, 0xf5, 0xf5},
		Cursor:     [3]uint8{0x90, 0x90, 0x90},
	},
	"catppuccin-mocha": {
		Name:       "catppuccin-mocha",
		Background: [3]uint8{0x1e, 0x1e, 0x2e},
		Foreground: [3]uint8{0xcd, 0xd6, 0xf4},
		Cursor:     [3]uint8{0xf5, 0xe0, 0xdc},
	},
}

// ThemeByName resolves a theme name, falling back to "crow-black" for an
// unknown or empty name.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["crow-black"]
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	return []string{"raven-blue", "crow-black", "magpie-black-white-grey", "catppuccin-mocha"}
}
