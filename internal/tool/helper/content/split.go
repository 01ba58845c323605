package content

// SplitLines splits content into lines using the same universal newline rules
// as ReadFirstLine: "\n", "\r\n" and a lone "\r" each end a line.
// Terminators are not included. Content ending in a terminator does NOT
// produce a trailing empty string.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, content[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, content[start:i])
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}
