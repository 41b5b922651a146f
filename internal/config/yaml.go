package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseYAML reads settings written as a mapping of section name to
// key/values. A sources value may be a list or a multi-line string.
//
//	general:
//	  directory: src
//	  sources: [schema]
//	schema:
//	  sources:
//	    - tables/customer.sql
//	    - procedures
func parseYAML(path string, data []byte) (map[string]map[string]string, error) {
	var doc map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: path, Message: "cannot parse YAML", Err: err}
	}

	sections := make(map[string]map[string]string, len(doc))
	for name, raw := range doc {
		values := make(map[string]string, len(raw))
		for k, v := range raw {
			s, err := scalarString(v)
			if err != nil {
				return nil, &ConfigError{Path: path, Section: name, Message: fmt.Sprintf("key %q", k), Err: err}
			}
			values[strings.ToLower(k)] = s
		}
		sections[name] = values
	}
	return sections, nil
}

func scalarString(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, err := scalarString(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, "\n"), nil
	case map[string]interface{}:
		return "", fmt.Errorf("nested mappings are not supported")
	default:
		return fmt.Sprint(t), nil
	}
}
