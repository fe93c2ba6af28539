// FILE: lixenwraith/confchain/preferences/doc.go

// Package preferences holds typed values a user may change while the
// application runs. Preferences are registered explicitly from a Spec:
//
//	var Theme = preferences.Spec[string]{ID: "ui.theme", Type: preferences.Text, Default: "dark"}
//	var Verbose = preferences.Spec[bool]{ID: "log.verbose", Type: preferences.Flag, Default: "off"}
//
//	prefs := preferences.NewRegistry()
//	if err := prefs.RegisterAll(Theme, Verbose); err != nil { ... }
//	preferences.Watch(prefs, Theme, func(theme string) { applyTheme(theme) })
//	prefs.Set("ui.theme", "light")
//
// Listeners run synchronously on the goroutine that changed the value, in
// registration order, and receive the current value when they register.
//
// A registry can be saved to and loaded from a TOML, YAML or JSON file, and
// WatchFile keeps it in sync with a file edited by hand.
package preferences
