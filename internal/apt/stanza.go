package apt

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Stanza is one RFC822-style paragraph of key/value fields, with keys
// retained in their original insertion order so diagnostics and
// re-serialization can reproduce the source layout.
type Stanza struct {
	order  []string
	values map[string]string
}

func newStanza() *Stanza {
	return &Stanza{values: make(map[string]string)}
}

// Get returns the field value and whether the key was present.
func (s *Stanza) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the fields in the order they first appeared in the stanza.
func (s *Stanza) Keys() []string {
	return s.order
}

func (s *Stanza) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

func (s *Stanza) append(key, cont string) {
	s.values[key] = s.values[key] + "\n" + cont
}

// parseStanzas tokenizes an RFC822-style Debian control file into ordered
// field maps: fields are "Key: value" on their first line, continuation
// lines begin with space/tab and are appended to the most-recently-inserted
// key with a joining newline, and a continuation before any key or a
// non-blank line without ":" is a fatal parse error. A stanza without a
// trailing blank line at EOF is still emitted.
func parseStanzas(r io.Reader) ([]*Stanza, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var stanzas []*Stanza
	cur := newStanza()
	var lastKey string
	lineNo := 0

	flush := func() {
		if len(cur.order) > 0 {
			stanzas = append(stanzas, cur)
		}
		cur = newStanza()
		lastKey = ""
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if lastKey == "" {
				return nil, &IndexStructuralError{Reason: continuationBeforeKeyMsg(lineNo)}
			}
			cur.append(lastKey, strings.TrimLeft(line, " \t"))
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, &IndexStructuralError{Reason: lineWithoutColonMsg(lineNo, line)}
		}

		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		cur.set(key, val)
		lastKey = key
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	return stanzas, nil
}

func continuationBeforeKeyMsg(lineNo int) string {
	return "continuation line before any field, at line " + strconv.Itoa(lineNo)
}

func lineWithoutColonMsg(lineNo int, line string) string {
	return "non-blank line without ':' at line " + strconv.Itoa(lineNo) + ": " + line
}
