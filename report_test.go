package scenewire

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportScene(t *testing.T) (*Hierarchy, *WeaponMount, *ClockDisplay) {
	t.Helper()

	h := NewHierarchy()
	root := mustNode(h, NoNode, "root")
	child := mustNode(h, root, "child")

	mount := &WeaponMount{}
	display := &ClockDisplay{}
	mustAttach(h, root, &Cannon{})
	mustAttach(h, child, mount)
	mustAttach(h, child, display)
	return h, mount, display
}

func TestReport(t *testing.T) {
	h, _, _ := reportScene(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res := Resolve(h)
	Report(logger, res)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "dependency injected")
	assert.Contains(t, lines[0], "member=Weapon")
	assert.Contains(t, lines[0], "source=*Cannon")

	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[1], "status=Unresolved")
	assert.Contains(t, lines[1], "member=SetClock")

	// Every line carries the pass ID.
	for _, line := range lines {
		assert.Contains(t, line, res.PassID)
	}
}

func TestReport_NilLogger(t *testing.T) {
	h, _, _ := reportScene(t)
	assert.NotPanics(t, func() {
		Report(nil, Resolve(h))
	})
}

func TestWithLogger_MatchesReport(t *testing.T) {
	h, _, _ := reportScene(t)

	var during bytes.Buffer
	res := Resolve(h, WithLogger(slog.New(slog.NewTextHandler(&during, nil))))

	var after bytes.Buffer
	Report(slog.New(slog.NewTextHandler(&after, nil)), res)

	strip := func(s string) string {
		var out []string
		for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
			// Drop the handler timestamp, keep the rest.
			if i := strings.Index(line, "level="); i >= 0 {
				out = append(out, line[i:])
			}
		}
		return strings.Join(out, "\n")
	}
	assert.Equal(t, strip(after.String()), strip(during.String()))
}

func TestReport_AmbiguousListsCandidates(t *testing.T) {
	h := NewHierarchy()
	root := mustNode(h, NoNode, "root")
	mustAttach(h, root, &ClockDisplay{})
	mustAttach(h, root, &GameClock{})
	mustAttach(h, root, &GameClock{})

	var buf bytes.Buffer
	Report(slog.New(slog.NewTextHandler(&buf, nil)), Resolve(h))

	out := buf.String()
	assert.Contains(t, out, "ambiguous service")
	assert.Contains(t, out, "*GameClock")
}
