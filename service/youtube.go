package service

import (
	"fmt"
	"regexp"
)

// youTubeIDPattern matches the known URL shapes that carry a video ID:
// youtu.be short links, /v/ and /u/*/ paths, embed URLs, and watch-style
// query parameters. The ID is whatever follows, up to a #, & or ?.
var youTubeIDPattern = regexp.MustCompile(`(youtu\.be/|/v/|/u/\w/|/embed/|watch\?v=|&v=)([^#&?]*)`)

// youTubeIDLength is the fixed length of a YouTube video ID; captures of any
// other length are treated as non-matches.
const youTubeIDLength = 11

// ExtractVideoID pulls a YouTube video ID out of a URL. The second return is
// false when the URL is not a recognized video-hosting link.
func ExtractVideoID(url string) (string, bool) {
	m := youTubeIDPattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != youTubeIDLength {
		return "", false
	}
	return m[2], true
}

// VideoThumbnail derives the predictable thumbnail URL for a recognized
// video link. Unrecognized URLs yield an empty string, never an error, so
// direct video file URLs pass through with no thumbnail.
func VideoThumbnail(url string) string {
	id, ok := ExtractVideoID(url)
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}
