package minijson

// Booleans are single characters: + for true, - for false.

func formatBool(b bool) string {
	if b {
		return "+"
	}
	return "-"
}

// isBoolToken matches only the two forms formatBool writes.
func isBoolToken(s string) bool {
	return s == "+" || s == "-"
}

func parseBool(s string) bool {
	return s == "+"
}
