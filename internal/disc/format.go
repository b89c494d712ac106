package disc

import "fmt"

// FormatDuration renders seconds as "05m 09s" or "1h 02m 03s".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes, secs := seconds/60, seconds%60
	hours, minutes := minutes/60, minutes%60
	text := fmt.Sprintf("%02dm %02ds", minutes, secs)
	if hours > 0 {
		text = fmt.Sprintf("%dh %s", hours, text)
	}
	return text
}
