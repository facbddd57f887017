// Package frontmatter reads the YAML metadata header at the start of a
// documentation file.
package frontmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		return []byte{}, content[frontmatterStart+len(closeLine):], true, nil
	}
	if string(content[frontmatterStart:]) == "---" {
		return []byte{}, []byte{}, true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without a trailing newline.
		closeEOF := []byte(nl + "---")
		if bytes.HasSuffix(content, closeEOF) && len(content)-len(closeEOF) >= frontmatterStart {
			end := len(content) - len(closeEOF) + len(nl)
			return content[frontmatterStart:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	frontmatterEnd := frontmatterStart + idx + len(nl)
	bodyStart := frontmatterStart + idx + len(closeSeq)
	return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
