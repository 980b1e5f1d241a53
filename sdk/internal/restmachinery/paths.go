package restmachinery

import "strings"

// ComposePath joins path segments with "/", omitting empty segments and
// surplus slashes.
func ComposePath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment = strings.Trim(segment, "/"); segment != "" {
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, "/")
}
