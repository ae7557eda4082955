package twospace

// FrontmatterBounds describes the leading front matter block of a document.
// End is exclusive and includes the closing delimiter when Closed is true
type FrontmatterBounds struct {
	Start  int
	End    int
	Found  bool
	Closed bool
}

// FindFrontmatter finds the front matter block using the same rule as Rewrite:
// the first line must be exactly "---" and the block closes on the next line that is exactly "---".
// An unterminated block runs to the end of the document
func FindFrontmatter(lines []string) FrontmatterBounds {
	if len(lines) == 0 || lines[0] != FrontmatterDelimiter {
		return FrontmatterBounds{}
	}

	// Look for the closing frontmatter delimiter
	for i := 1; i < len(lines); i++ {
		if lines[i] == FrontmatterDelimiter {
			return FrontmatterBounds{
				Start:  0,
				End:    i + 1,
				Found:  true,
				Closed: true,
			}
		}
	}

	return FrontmatterBounds{
		Start: 0,
		End:   len(lines),
		Found: true,
	}
}

// Lines returns the lines strictly between the delimiters
func (b FrontmatterBounds) Lines(lines []string) []string {
	if !b.Found {
		return nil
	}

	end := b.End
	if b.Closed {
		end--
	}
	if b.Start+1 >= end {
		return nil
	}

	return lines[b.Start+1 : end]
}
