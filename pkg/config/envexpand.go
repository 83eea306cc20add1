package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// ExpandEnv expands {{.VAR_NAME}} references in YAML content against the
// process environment. Shell-style $VAR and ${VAR} are left untouched.
//
// Missing variables expand to empty string. Content that is not a valid
// template is returned unchanged so the YAML parser can report on it.
func ExpandEnv(data []byte) []byte {
	return expandEnv(data, os.Environ())
}

func expandEnv(data []byte, environ []string) []byte {
	tmpl, err := template.New("config").Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	envMap := make(map[string]string, len(environ))
	for _, kv := range environ {
		// Values may themselves contain '='
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			envMap[key] = value
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envMap); err != nil {
		return data
	}
	return buf.Bytes()
}
