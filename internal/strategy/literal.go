package strategy

// LiteralAfter returns the balanced object or array literal that begins at
// the first '{' or '[' at or after from. Only whitespace and assignment
// punctuation may precede it. Brackets inside string literals are ignored.
func LiteralAfter(text string, from int) (string, bool) {
	start := -1
	for i := from; i < len(text); i++ {
		c := text[i]
		if c == '{' || c == '[' {
			start = i
			break
		}
		switch c {
		case ' ', '\t', '\n', '\r', '=', ':', '(':
			continue
		}
		return "", false
	}
	if start < 0 {
		return "", false
	}

	end, ok := balancedEnd(text, start)
	if !ok {
		return "", false
	}
	return text[start : end+1], true
}

// balancedEnd returns the index of the bracket closing the one at start
func balancedEnd(text string, start int) (int, bool) {
	var stack []byte
	var quote byte
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
