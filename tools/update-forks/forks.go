package updateforks

import (
	"fmt"
	"regexp"
	"strings"
)

// Fork is a dependency whose upstream import path is replaced by a fork in
// go.mod.
type Fork struct {
	Upstream string
	Fork     string
}

// The forks isopick builds against.
var Forks = []Fork{
	{Upstream: "github.com/runningwild/glop", Fork: "github.com/caffeine-storm/glop"},
	{Upstream: "github.com/MobRulesGames/mathgl", Fork: "github.com/caffeine-storm/mathgl"},
}

func FindFork(name string) (Fork, bool) {
	for _, f := range Forks {
		if f.Fork == name || f.Upstream == name || strings.HasSuffix(f.Fork, "/"+name) {
			return f, true
		}
	}
	return Fork{}, false
}

var pseudoVersion = regexp.MustCompile(`^v[[:digit:]]+\.[[:digit:]]+\.[[:digit:]]+-[[:digit:]]{14}-[[:xdigit:]]{12}`)

// 'go get -u fork@latest' fails because the fork's go.mod still names the
// upstream path, but on the way it prints the revision it resolved. ParseRev
// digs that revision out.
func ParseRev(goGetCommandData string, fork Fork) (string, error) {
	line, _, found := strings.Cut(goGetCommandData, ": parsing go.mod")
	if !found {
		return "", fmt.Errorf("couldn't strings.Cut input")
	}

	target := fork.Fork + "@"
	idx := strings.LastIndex(line, target)
	if idx < 0 {
		return "", fmt.Errorf("no mention of %q in output", target)
	}
	rev := line[idx+len(target):]

	// rev should look like 'v0.0.0-20241010144107-015f009dded2'
	if !pseudoVersion.MatchString(rev) {
		return "", fmt.Errorf("input parsing failed to match %q against a version", rev)
	}
	return pseudoVersion.FindString(rev), nil
}

func ReplaceArg(fork Fork, rev string) string {
	return fmt.Sprintf("-replace=%s=%s@%s", fork.Upstream, fork.Fork, rev)
}
