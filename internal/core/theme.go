package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Theme is a resolved appearance.
type Theme string

// ThemeSetting is the stored preference; System resolves dynamically.
type ThemeSetting string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	ThemeSettingLight  ThemeSetting = "light"
	ThemeSettingDark   ThemeSetting = "dark"
	ThemeSettingSystem ThemeSetting = "system"
)

// ColorSchemeSource reports the OS color-scheme signal and notifies on
// change, the analogue of a prefers-color-scheme media query.
type ColorSchemeSource interface {
	PrefersDark() bool
	Subscribe(fn func(prefersDark bool)) (cancel func())
}

// StaticColorScheme is a fixed, non-notifying source for headless use.
type StaticColorScheme bool

func (s StaticColorScheme) PrefersDark() bool { return bool(s) }

func (StaticColorScheme) Subscribe(func(bool)) func() { return func() {} }

// ThemePreferenceStore persists the setting across sessions.
type ThemePreferenceStore interface {
	Load() (ThemeSetting, bool, error)
	Save(setting ThemeSetting) error
}

// FileThemeStore persists the preference as a small JSON file.
type FileThemeStore struct {
	path string
	mu   sync.Mutex
}

// NewFileThemeStore returns a store persisting to path.
func NewFileThemeStore(path string) *FileThemeStore { return &FileThemeStore{path: path} }

func (s *FileThemeStore) Load() (ThemeSetting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	var setting ThemeSetting
	if err := json.Unmarshal(raw, &setting); err != nil {
		return "", false, err
	}
	return setting, true, nil
}

func (s *FileThemeStore) Save(setting ThemeSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(setting)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// ThemeController owns the durable preference and the resolved theme. With
// the System setting the resolved theme follows the color-scheme source and
// re-resolves on every signal change.
type ThemeController struct {
	mu        sync.Mutex
	setting   ThemeSetting
	source    ColorSchemeSource
	store     ThemePreferenceStore
	listeners map[int]func(Theme)
	nextID    int
	cancel    func()
}

// NewThemeController loads the stored preference (default System) and starts
// following the color-scheme source.
func NewThemeController(store ThemePreferenceStore, source ColorSchemeSource) (*ThemeController, error) {
	if source == nil {
		source = StaticColorScheme(false)
	}
	c := &ThemeController{
		setting:   ThemeSettingSystem,
		source:    source,
		store:     store,
		listeners: make(map[int]func(Theme)),
	}
	if store != nil {
		setting, ok, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load theme preference: %w", err)
		}
		if ok {
			if err := validateThemeSetting(setting); err != nil {
				return nil, err
			}
			c.setting = setting
		}
	}
	c.cancel = source.Subscribe(func(bool) { c.signalChanged() })
	return c, nil
}

// Close stops following the color-scheme source.
func (c *ThemeController) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Setting returns the stored preference.
func (c *ThemeController) Setting() ThemeSetting {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setting
}

// SetSetting validates, persists and applies a new preference.
func (c *ThemeController) SetSetting(setting ThemeSetting) error {
	if err := validateThemeSetting(setting); err != nil {
		return err
	}

	c.mu.Lock()
	c.setting = setting
	store := c.store
	c.mu.Unlock()

	if store != nil {
		if err := store.Save(setting); err != nil {
			return fmt.Errorf("save theme preference: %w", err)
		}
	}
	c.notify()
	return nil
}

// Theme resolves the current appearance.
func (c *ThemeController) Theme() Theme {
	c.mu.Lock()
	setting := c.setting
	c.mu.Unlock()
	return ResolveTheme(setting, c.source.PrefersDark())
}

// OnChange registers a listener called whenever the resolved theme may have
// changed. The returned func cancels the registration.
func (c *ThemeController) OnChange(fn func(Theme)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *ThemeController) signalChanged() {
	c.mu.Lock()
	setting := c.setting
	c.mu.Unlock()
	if setting == ThemeSettingSystem {
		c.notify()
	}
}

func (c *ThemeController) notify() {
	theme := c.Theme()
	c.mu.Lock()
	fns := make([]func(Theme), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(theme)
	}
}

// ResolveTheme maps a setting and the OS signal to a concrete appearance.
func ResolveTheme(setting ThemeSetting, prefersDark bool) Theme {
	switch setting {
	case ThemeSettingLight:
		return ThemeLight
	case ThemeSettingDark:
		return ThemeDark
	default:
		if prefersDark {
			return ThemeDark
		}
		return ThemeLight
	}
}

func validateThemeSetting(setting ThemeSetting) error {
	switch setting {
	case ThemeSettingLight, ThemeSettingDark, ThemeSettingSystem:
		return nil
	default:
		return fmt.Errorf("invalid theme setting %q", setting)
	}
}
