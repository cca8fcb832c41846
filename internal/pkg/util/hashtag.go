package util

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#([\w-]+)`)

// ExtractHashtags 提取正文中的话题标签，统一小写并去重，保持出现顺序
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}
