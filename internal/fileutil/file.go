package fileutil

import (
	"os"
	"strings"
)

// strip characters that are illegal on some filesystems or painful in shells
func SanitizeReplaceName(name string) string {
	rep := strings.NewReplacer(
		"?", "",
		"!", "",
		"*", "",
		"#", "",
		"@", "",
		"&", "and",
		"\n", "",
		`\`, "_",
		"/", "_",
		":", "-",
		";", "-",
		"<", "_",
		">", "_",
		`"`, "'",
		"|", "_",
	)
	return rep.Replace(strings.TrimSpace(name))
}

func MkdirAllIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0700)
	}
	return nil
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
