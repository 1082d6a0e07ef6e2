package route

import (
	"regexp"
	"strings"
)

type segmentKind uint8

const (
	staticSegment segmentKind = iota
	dynamicSegment
	matcherSegment
	mixedSegment
	wildcardSegment
)

func (k segmentKind) String() string {
	switch k {
	case dynamicSegment:
		return "dynamic"
	case matcherSegment:
		return "matcher"
	case mixedSegment:
		return "mixed"
	case wildcardSegment:
		return "wildcard"
	default:
		return "static"
	}
}

var (
	matcherSegmentRegex = regexp.MustCompile(`^:(.+)=([a-zA-Z]+)$`)
	mixedSegmentRegex   = regexp.MustCompile(`^(.+)[:]([\w]+)$`)
)

// segment is one classified path segment of a route pattern.
// raw is the segment as written and doubles as the trie key for
// matcher and mixed segments.
type segment struct {
	kind    segmentKind
	raw     string
	param   string
	matcher string
	prefix  string
}

func parseSegment(s string) segment {
	if name, ok := strings.CutPrefix(s, "*"); ok {
		return segment{kind: wildcardSegment, raw: s, param: name}
	}
	if m := matcherSegmentRegex.FindStringSubmatch(s); m != nil {
		return segment{kind: matcherSegment, raw: s, param: m[1], matcher: m[2]}
	}
	if name, ok := strings.CutPrefix(s, ":"); ok {
		return segment{kind: dynamicSegment, raw: s, param: name}
	}
	if m := mixedSegmentRegex.FindStringSubmatch(s); m != nil {
		return segment{kind: mixedSegment, raw: s, prefix: m[1], param: m[2]}
	}
	return segment{kind: staticSegment, raw: s}
}

// splitSegments splits a path on "/" and drops empty tokens,
// so "/a//b/" yields [a b].
func splitSegments(path string) []string {
	segments := make([]string, 0, strings.Count(path, "/")+1)
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
