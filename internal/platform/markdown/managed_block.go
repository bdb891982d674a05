package markdown

import "strings"

// Block markers for generated note sections. Text outside the markers
// belongs to the user and survives re-export.
const (
	BlockStart = "<!-- studyplanner:start -->"
	BlockEnd   = "<!-- studyplanner:end -->"
)

// ReplaceManagedBlock swaps the generated section of body, appending one
// when the markers are absent.
func ReplaceManagedBlock(body, generated string) string {
	start := strings.Index(body, BlockStart)
	end := strings.Index(body, BlockEnd)
	block := BlockStart + "\n" + strings.TrimRight(generated, "\n") + "\n" + BlockEnd

	if start >= 0 && end > start {
		end += len(BlockEnd)
		return body[:start] + block + body[end:]
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
