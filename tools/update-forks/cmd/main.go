package main

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"

	updateforks "github.com/MobRulesGames/isopick/tools/update-forks"
)

// Points the go.mod replace directive for each named fork (or all of them)
// at the fork's latest revision.
func main() {
	forks := updateforks.Forks
	if len(os.Args) > 1 {
		forks = nil
		for _, name := range os.Args[1:] {
			fork, ok := updateforks.FindFork(name)
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown fork %q\n", name)
				os.Exit(1)
			}
			forks = append(forks, fork)
		}
	}

	target, err := filepath.Abs("../../go.mod")
	if err != nil {
		panic(fmt.Errorf("couldn't abspath: %w", err))
	}
	fmt.Printf("targeting go.mod file: %q\n", path.Clean(target))

	for _, fork := range forks {
		cmd := exec.Command("go", "get", "-u", fork.Fork+"@latest")

		// Defeat the default cache at proxy.golang.org or else we can get stale
		// results.
		cmd.Env = append(os.Environ(), "GONOPROXY="+fork.Fork)

		data, err := cmd.CombinedOutput()
		// We _EXPECT_ the go get to fail
		if err == nil {
			panic(fmt.Errorf("'go get %s' didn't fail?", fork.Fork))
		}

		rev, err := updateforks.ParseRev(string(data), fork)
		if err != nil {
			panic(fmt.Errorf("couldn't ParseRev: %w\n%s", err, data))
		}

		cmd = exec.Command("go", "mod", "edit", updateforks.ReplaceArg(fork, rev), target)
		fmt.Printf("running command: %v\n", cmd)
		data, err = cmd.CombinedOutput()
		if err != nil {
			panic(fmt.Errorf("couldn't run 'go mod edit...': %v\n%s", err, data))
		}
	}

	fmt.Printf("don't forget to run 'go mod tidy'!\n")
}
