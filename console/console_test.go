package console_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/MobRulesGames/isopick/console"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

func ConsoleSpec() {
	buf := &bytes.Buffer{}
	c := console.MakeConsole(buf)

	Convey("starts empty", func() {
		c.Think()
		So(c.Lines(), ShouldBeEmpty)
	})

	Convey("picks up lines as they are written", func() {
		fmt.Fprintln(buf, "first")
		c.Think()
		fmt.Fprintln(buf, "second")
		c.Think()
		So(c.Lines(), ShouldResemble, []string{"first", "second"})
	})

	Convey("forgets the oldest lines", func() {
		for i := 0; i < 30; i++ {
			fmt.Fprintf(buf, "line %d\n", i)
		}
		c.Think()
		lines := c.Lines()
		So(len(lines), ShouldBeLessThan, 30)
		So(lines[len(lines)-1], ShouldEqual, "line 29")
		So(lines[0], ShouldEqual, fmt.Sprintf("line %d", 30-len(lines)))
	})

	Convey("truncates long lines", func() {
		fmt.Fprintln(buf, strings.Repeat("x", 500))
		c.Think()
		So(len(c.Lines()[0]), ShouldBeLessThan, 500)
	})

	Convey("scrolls sideways", func() {
		fmt.Fprintln(buf, "0123456789")
		fmt.Fprintln(buf, "ab")
		c.Think()

		c.ScrollRight(4)
		So(c.Lines(), ShouldResemble, []string{"456789", ""})

		c.ScrollLeft(10)
		So(c.Lines(), ShouldResemble, []string{"0123456789", "ab"})

		c.ScrollRight(3)
		c.ResetScroll()
		So(c.Lines()[0], ShouldEqual, "0123456789")
	})
}

func TestConsole(t *testing.T) {
	Convey("console.Console", t, ConsoleSpec)
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, slog.LevelError, console.Severity(`time=now level=ERROR msg="bad"`))
	assert.Equal(t, slog.LevelWarn, console.Severity(`level=WARN msg=hmm`))
	assert.Equal(t, slog.LevelDebug, console.Severity(`level=DEBUG msg=hmm`))
	assert.Equal(t, slog.LevelInfo, console.Severity(`level=INFO msg=ok`))
	assert.Equal(t, slog.LevelInfo, console.Severity(`END OF LOG`))
}
