package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
)

// includePrefix marks a line that is replaced with a registered WGSL struct source.
//
// Syntax: //@viewer:include <name>
const includePrefix = "//@viewer:include"

// includeRegistry maps include names to embedded WGSL struct sources owned by other packages.
var includeRegistry = map[string]string{
	"camera": camera.GPUCameraUniformSource,
}

// expandIncludes replaces every include line with the registered struct source.
// Each name is expanded at most once; repeated includes of the same name expand to nothing.
//
// Parameters:
//   - source: raw WGSL source
//
// Returns:
//   - string: the source with includes expanded
//   - error: an error if an include names an unknown struct or is malformed
func expandIncludes(source string) (string, error) {
	var sb strings.Builder
	seen := make(map[string]bool)

	for i, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includePrefix) {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}

		args := strings.Fields(strings.TrimPrefix(trimmed, includePrefix))
		if len(args) != 1 {
			return "", fmt.Errorf("line %d: include expects exactly one name, got %d", i+1, len(args))
		}
		src, ok := includeRegistry[args[0]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, args[0])
		}
		if seen[args[0]] {
			continue
		}
		seen[args[0]] = true
		sb.WriteString(src)
		if !strings.HasSuffix(src, "\n") {
			sb.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
