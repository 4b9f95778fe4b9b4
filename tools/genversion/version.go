package genversion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var outputTemplate = template.Must(template.New("output").Parse(outputTemplateStr))

const outputTemplateStr = `package gen

func Version() string {
	return "{{.}}"
}
`

func GenFile(commitHash string, outFile io.Writer) error {
	return outputTemplate.Execute(outFile, commitHash)
}

// Finds the commit that a .git/HEAD file points at. The file holds either a
// raw hash like
//
//	c0ffeec0ffec0ffec0ffec0ffec0ffec0ffeec0f
//
// or a symbolic ref like
//
//	ref: refs/heads/main
func ReadCommitHash(headPath string) (string, error) {
	headBytes, err := os.ReadFile(headPath)
	if err != nil {
		return "", fmt.Errorf("couldn't os.ReadFile(%q): %w", headPath, err)
	}
	if !bytes.HasPrefix(headBytes, []byte("ref: ")) {
		return string(bytes.TrimSpace(headBytes)), nil
	}

	ref := strings.TrimSpace(strings.SplitAfterN(string(headBytes), " ", 2)[1])
	refPath := filepath.Join(filepath.Dir(headPath), ref)
	commitHash, err := os.ReadFile(refPath)
	if err != nil {
		return "", fmt.Errorf("couldn't os.ReadFile(%q): %w", refPath, err)
	}
	return string(bytes.TrimSpace(commitHash)), nil
}
