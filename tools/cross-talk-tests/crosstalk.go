package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <victim> <suite> [packages...]\n", os.Args[0])
	os.Exit(1)
}

func readTestList(fpath string) []string {
	f, err := os.Open(fpath)
	if err != nil {
		panic(fmt.Errorf("couldn't os.Open %q: %w", fpath, err))
	}
	defer f.Close()

	byteSlice, err := io.ReadAll(f)
	if err != nil {
		panic(fmt.Errorf("couldn't io.ReadAll %q: %w", fpath, err))
	}

	lines := bytes.Split(byteSlice, []byte{'\n'})
	ret := []string{}
	for _, line := range lines {
		if len(line) != 0 {
			ret = append(ret, string(line))
		}
	}

	slog.Info("readTestList", "fpath", fpath, "result", ret)
	return ret
}

// Builds a 'go test -run' pattern matching exactly the named tests.
func runPattern(tests []string) string {
	quoted := make([]string, len(tests))
	for i, test := range tests {
		quoted[i] = regexp.QuoteMeta(test)
	}
	return "^(" + strings.Join(quoted, "|") + ")$"
}

// Runs the victims together with the suite, uncached, in a random order.
// Tests share registries so a failure here is blamed on cross talk.
func goTestRunner(packages []string) func(victim, suite []string) bool {
	return func(victim, suite []string) bool {
		// First, randomize the order of the suite so that we can explore different
		// samplings than just contiguous slices of the original list.
		suite = append([]string(nil), suite...)
		rand.Shuffle(len(suite), func(i, j int) {
			suite[i], suite[j] = suite[j], suite[i]
		})

		args := append([]string{"test", "-count=1", "-shuffle=on", "-run", runPattern(append(victim, suite...))}, packages...)
		cmd := exec.Command("go", args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		slog.Info("going to run 'go test' command", "cmd", cmd)
		err := cmd.Run()
		return err != nil
	}
}

var errNoRepro = errors.New("couldn't repro with original specification")

// Bisects suite down to the tests that still make victim fail.
func reduce(victim, suite []string, hasCrossTalk func(victim, suite []string) bool) ([]string, error) {
	// Run 'suite' and 'victim'
	// if tests fail, assume it's because of cross talk
	//   try again with first half of suite
	//		 fail => first-half again
	//		 success => second-half
	if !hasCrossTalk(victim, suite) {
		return nil, errNoRepro
	}

	for len(suite) > 1 {
		slog.Info("looping", "suiteTests", suite)
		firstHalf, secondHalf := suite[0:len(suite)/2], suite[len(suite)/2:]

		if hasCrossTalk(victim, firstHalf) {
			suite = firstHalf
			continue
		}

		if hasCrossTalk(victim, secondHalf) {
			suite = secondHalf
			continue
		}

		// We could try to sample differently but, for now, 'suite' is a good
		// candidate.
		break
	}
	return suite, nil
}

func showTest(parts []string) string {
	return strings.Join(parts, ", ")
}

func main() {
	if len(os.Args) < 3 {
		usage()
	}

	victimTests := readTestList(os.Args[1])
	suiteTests := readTestList(os.Args[2])
	packages := os.Args[3:]
	if len(packages) == 0 {
		packages = []string{"./..."}
	}
	fmt.Printf("attempting cross-talk reduction between %d victims and %d suite-mates\n", len(victimTests), len(suiteTests))

	culprits, err := reduce(victimTests, suiteTests, goTestRunner(packages))
	if err != nil {
		panic(err)
	}
	fmt.Printf("cross talk reduction: %q (%d) coupled with %q (%d) still fails\n",
		showTest(victimTests), len(victimTests), showTest(culprits), len(culprits))
}
