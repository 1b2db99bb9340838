package utils

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile("[^a-z0-9]+")

func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlphaNum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FileName joins the parts into a slugged file name with the given extension
func FileName(ext string, parts ...string) string {
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := Slugify(p); s != "" {
			slugs = append(slugs, s)
		}
	}
	if len(slugs) == 0 {
		slugs = append(slugs, "export")
	}
	return strings.Join(slugs, "-") + "." + strings.TrimPrefix(ext, ".")
}
