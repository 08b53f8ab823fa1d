package steam

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// VDFMap is a parsed Valve KeyValues block. Values are strings or nested VDFMaps.
type VDFMap map[string]interface{}

// Block returns the nested block stored under key, matching keys case-insensitively.
func (m VDFMap) Block(key string) (VDFMap, bool) {
	v, ok := m.lookup(key)
	if !ok {
		return nil, false
	}
	b, ok := v.(VDFMap)
	return b, ok
}

// String returns the string value stored under key, matching keys case-insensitively.
func (m VDFMap) String(key string) (string, bool) {
	v, ok := m.lookup(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m VDFMap) lookup(key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

type vdfToken struct {
	text   string
	quoted bool
	line   int
}

type vdfLexer struct {
	src  string
	pos  int
	line int
}

func (l *vdfLexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && strings.HasPrefix(l.src[l.pos:], "//"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// next returns the next token, or io.EOF at end of input.
func (l *vdfLexer) next() (vdfToken, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return vdfToken{}, io.EOF
	}

	switch c := l.src[l.pos]; c {
	case '{', '}':
		l.pos++
		return vdfToken{text: string(c), line: l.line}, nil
	case '"':
		var sb strings.Builder
		start := l.line
		for l.pos++; l.pos < len(l.src); l.pos++ {
			c := l.src[l.pos]
			switch {
			case c == '\\' && l.pos+1 < len(l.src):
				l.pos++
				switch e := l.src[l.pos]; e {
				case 'n':
					sb.WriteByte('\n')
				case 't':
					sb.WriteByte('\t')
				default:
					sb.WriteByte(e)
				}
			case c == '"':
				l.pos++
				return vdfToken{text: sb.String(), quoted: true, line: start}, nil
			default:
				if c == '\n' {
					l.line++
				}
				sb.WriteByte(c)
			}
		}
		return vdfToken{}, fmt.Errorf("vdf: line %d: unterminated string", start)
	default:
		start := l.pos
		for l.pos < len(l.src) && !strings.ContainsRune(" \t\r\n{}\"", rune(l.src[l.pos])) {
			l.pos++
		}
		return vdfToken{text: l.src[start:l.pos], line: l.line}, nil
	}
}

// ParseVDF reads Valve KeyValues text from r and returns the root block.
func ParseVDF(r io.Reader) (VDFMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vdf: %w", err)
	}
	lex := &vdfLexer{src: string(data), line: 1}
	return parseBlock(lex, false)
}

func parseBlock(lex *vdfLexer, nested bool) (VDFMap, error) {
	block := make(VDFMap)
	for {
		key, err := lex.next()
		if err == io.EOF {
			if nested {
				return nil, fmt.Errorf("vdf: unexpected end of input, missing '}'")
			}
			return block, nil
		}
		if err != nil {
			return nil, err
		}
		if !key.quoted && key.text == "}" {
			if !nested {
				return nil, fmt.Errorf("vdf: line %d: unexpected '}'", key.line)
			}
			return block, nil
		}
		if !key.quoted && key.text == "{" {
			return nil, fmt.Errorf("vdf: line %d: block without key", key.line)
		}

		val, err := lex.next()
		if err == io.EOF {
			return nil, fmt.Errorf("vdf: line %d: key %s has no value", key.line, strconv.Quote(key.text))
		}
		if err != nil {
			return nil, err
		}
		if !val.quoted && val.text == "{" {
			inner, err := parseBlock(lex, true)
			if err != nil {
				return nil, err
			}
			block[key.text] = inner
			continue
		}
		if !val.quoted && val.text == "}" {
			return nil, fmt.Errorf("vdf: line %d: key %s has no value", key.line, strconv.Quote(key.text))
		}
		block[key.text] = val.text
	}
}

// libraryPaths extracts library paths from a parsed libraryfolders.vdf root.
// Older files store the path directly as the numbered value.
func libraryPaths(root VDFMap) []string {
	lf, ok := root.Block("libraryfolders")
	if !ok {
		return nil
	}
	var paths []string
	for i := 0; ; i++ {
		v, ok := lf[strconv.Itoa(i)]
		if !ok {
			break
		}
		switch entry := v.(type) {
		case VDFMap:
			if p, ok := entry.String("path"); ok && p != "" {
				paths = append(paths, p)
			}
		case string:
			if entry != "" {
				paths = append(paths, entry)
			}
		}
	}
	return paths
}

// AppManifest holds parsed fields from an appmanifest_*.acf file.
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest_*.acf content.
func ParseAppManifest(r io.Reader) (AppManifest, error) {
	root, err := ParseVDF(r)
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root.Block("AppState")
	if !ok {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}
	var m AppManifest
	m.AppID, _ = state.String("appid")
	m.Name, _ = state.String("name")
	m.InstallDir, _ = state.String("installdir")
	return m, nil
}
