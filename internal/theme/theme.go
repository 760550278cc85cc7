// Package theme holds the dashboard's display preferences: the base
// visual theme, the seasonal overlay and the unit system. The state is
// owned by the application root and handed to whoever needs it; there
// is no package-level mutable state.
package theme

// Theme is the mutually exclusive base visual mode.
type Theme string

// SeasonalTheme is the decorative overlay cycled independently of the
// base theme.
type SeasonalTheme string

// Units selects the measurement system requested from the provider.
type Units string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeCosmic Theme = "cosmic"

	SeasonalNone      SeasonalTheme = "none"
	SeasonalChristmas SeasonalTheme = "christmas"
	SeasonalHalloween SeasonalTheme = "halloween"

	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

var (
	themeOrder    = []Theme{ThemeLight, ThemeDark, ThemeCosmic}
	seasonalOrder = []SeasonalTheme{SeasonalNone, SeasonalChristmas, SeasonalHalloween}
)

// Persisted storage keys.
const (
	keyTheme    = "theme"
	keySeasonal = "seasonalTheme"
)

// Store persists preference values across sessions. Writes are
// best-effort and fire-and-forget; a failed write must never corrupt
// the in-memory state.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// State is the resolved preference snapshot.
type State struct {
	Theme    Theme         `json:"theme"`
	Seasonal SeasonalTheme `json:"seasonalTheme"`
	Units    Units         `json:"units"`
}

// Manager drives the theme/unit state machine. It is not safe for
// concurrent use: the UI mutates it from a single event loop, and each
// toggle is atomic from the caller's perspective.
type Manager struct {
	store       Store
	prefersDark bool
	state       State
}

// NewManager wires the manager to its persistence store. prefersDark
// carries the system-level dark-mode signal consulted when no valid
// theme has been persisted.
func NewManager(store Store, prefersDark bool) *Manager {
	return &Manager{store: store, prefersDark: prefersDark}
}

// Initialize resolves the startup state: persisted values win when
// they parse against their enum, otherwise the theme falls back to the
// dark-mode signal and the seasonal overlay to "none". Units always
// start metric; the unit preference is session-only.
func (m *Manager) Initialize() State {
	th := ThemeLight
	if m.prefersDark {
		th = ThemeDark
	}
	if v, ok := m.store.Get(keyTheme); ok {
		if parsed, valid := parseTheme(v); valid {
			th = parsed
		}
	}

	se := SeasonalNone
	if v, ok := m.store.Get(keySeasonal); ok {
		if parsed, valid := parseSeasonal(v); valid {
			se = parsed
		}
	}

	m.state = State{Theme: th, Seasonal: se, Units: UnitsMetric}
	return m.state
}

// State returns the current snapshot.
func (m *Manager) State() State {
	return m.state
}

// ToggleTheme advances the base theme along light -> dark -> cosmic ->
// light and persists the new value.
func (m *Manager) ToggleTheme() State {
	m.state.Theme = themeOrder[(themeIndex(m.state.Theme)+1)%len(themeOrder)]
	m.store.Set(keyTheme, string(m.state.Theme))
	return m.state
}

// ToggleSeasonal advances the overlay along none -> christmas ->
// halloween -> none, independently of the base theme, and persists it.
func (m *Manager) ToggleSeasonal() State {
	m.state.Seasonal = seasonalOrder[(seasonalIndex(m.state.Seasonal)+1)%len(seasonalOrder)]
	m.store.Set(keySeasonal, string(m.state.Seasonal))
	return m.state
}

// SetUnits sets the unit system directly. Deliberately not persisted:
// the unit preference is session-only.
func (m *Manager) SetUnits(u Units) State {
	m.state.Units = u
	return m.state
}

// Markers returns the active visual marker set for the current state.
// At most one base-theme marker is present (light is the default and
// emits none), with the seasonal marker layered on top when an overlay
// is active. Pure in the state, so re-applying is idempotent.
func (m *Manager) Markers() []string {
	markers := make([]string, 0, 2)
	switch m.state.Theme {
	case ThemeDark:
		markers = append(markers, "dark")
	case ThemeCosmic:
		markers = append(markers, "cosmic")
	}
	if m.state.Seasonal != SeasonalNone {
		markers = append(markers, string(m.state.Seasonal))
	}
	return markers
}

func parseTheme(v string) (Theme, bool) {
	for _, t := range themeOrder {
		if v == string(t) {
			return t, true
		}
	}
	return "", false
}

func parseSeasonal(v string) (SeasonalTheme, bool) {
	for _, s := range seasonalOrder {
		if v == string(s) {
			return s, true
		}
	}
	return "", false
}

func themeIndex(t Theme) int {
	for i, candidate := range themeOrder {
		if candidate == t {
			return i
		}
	}
	return 0
}

func seasonalIndex(s SeasonalTheme) int {
	for i, candidate := range seasonalOrder {
		if candidate == s {
			return i
		}
	}
	return 0
}
