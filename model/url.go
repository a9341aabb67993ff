package model

import "regexp"

// videoURLPattern matches the two accepted YouTube video URL shapes: a watch
// page with an 11-character video id and optional extra parameters after '&',
// or a youtu.be shortlink with optional parameters after '?'. Scheme and
// 'www.' are optional in both.
var videoURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=([\w-]{11})(?:&\S*)?|youtu\.be/([\w-]{11})(?:\?\S*)?)$`)

// IsVideoURL reports whether candidate is a well-formed YouTube video URL.
func IsVideoURL(candidate string) bool {
	return videoURLPattern.MatchString(candidate)
}

// VideoID extracts the 11-character video id from a valid video URL.
func VideoID(candidate string) (string, bool) {
	m := videoURLPattern.FindStringSubmatch(candidate)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
