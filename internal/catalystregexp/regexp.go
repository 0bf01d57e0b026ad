package catalystregexp

import "regexp"

var (
	App = regexp.MustCompile(`^.+\.app/?$`)
)
