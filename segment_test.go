package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSegment(t *testing.T) {
	tests := []struct {
		in   string
		want segment
	}{
		{in: "users", want: segment{kind: staticSegment, raw: "users"}},
		{in: "*rest", want: segment{kind: wildcardSegment, raw: "*rest", param: "rest"}},
		{in: "*", want: segment{kind: wildcardSegment, raw: "*"}},
		{in: ":id=number", want: segment{kind: matcherSegment, raw: ":id=number", param: "id", matcher: "number"}},
		{in: ":id=num2", want: segment{kind: dynamicSegment, raw: ":id=num2", param: "id=num2"}},
		{in: ":id", want: segment{kind: dynamicSegment, raw: ":id", param: "id"}},
		{in: "file-:name", want: segment{kind: mixedSegment, raw: "file-:name", prefix: "file-", param: "name"}},
		{in: "a:b:c", want: segment{kind: mixedSegment, raw: "a:b:c", prefix: "a:b", param: "c"}},
		{in: "a:", want: segment{kind: staticSegment, raw: "a:"}},
		{in: "a:b-c", want: segment{kind: staticSegment, raw: "a:b-c"}},
		{in: "*:x", want: segment{kind: wildcardSegment, raw: "*:x", param: ":x"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseSegment(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.kind.String(), got.kind.String())
		})
	}
}

func TestSplitSegments(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitSegments("/a//b/"))
	assert.Empty(t, splitSegments("/"))
	assert.Empty(t, splitSegments(""))
}
