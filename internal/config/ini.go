package config

import (
	"gopkg.in/ini.v1"
)

// parseINI reads configparser-style settings: indented continuation lines
// extend the previous value, option names are case-insensitive and the
// DEFAULT section supplies values to every other section.
func parseINI(path string, data []byte) (map[string]map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
	}, data)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "cannot parse INI", Err: err}
	}

	defaults := map[string]string{}
	for _, key := range f.Section(ini.DefaultSection).Keys() {
		defaults[key.Name()] = key.Value()
	}

	sections := make(map[string]map[string]string)
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		values := make(map[string]string, len(defaults))
		for k, v := range defaults {
			values[k] = v
		}
		for _, key := range sec.Keys() {
			values[key.Name()] = key.Value()
		}
		sections[sec.Name()] = values
	}
	return sections, nil
}
