package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type FmterType int

const (
	IgnoreFmter FmterType = iota
	YamlFmter
)

var extensionToFmter = map[string]FmterType{
	"":     IgnoreFmter,
	".gob": IgnoreFmter,
	".log": IgnoreFmter,
	".md":  IgnoreFmter,

	".scene":   YamlFmter,
	".tilemap": YamlFmter,
	".yaml":    YamlFmter,
}

func getCheckFlag(flagname string) bool {
	for idx, arg := range os.Args[1:] {
		if arg == flagname {
			copy(os.Args[idx+1:], os.Args[idx+2:])
			os.Args = os.Args[:len(os.Args)-1]
			return true
		}
	}

	return false
}

// Returns an error if something went wrong. Returns true if the formatter
// suggests/has-applied changes.
type Fmter func(string) (bool, error)

func nopfmter(string) (bool, error) {
	return false, nil
}

// Re-encodes a YAML document with two space indents. Comments and flow/block
// styles survive since the document goes through a yaml.Node.
func formatYaml(contents []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return contents, nil
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlfmt(readOnly bool) Fmter {
	return func(path string) (bool, error) {
		contents, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("couldn't os.ReadFile %q: %w", path, err)
		}

		formatted, err := formatYaml(contents)
		if err != nil {
			return false, fmt.Errorf("couldn't parse %q: %w", path, err)
		}

		diff := !bytes.Equal(contents, formatted)
		if readOnly || !diff {
			// If we shouldn't change anything or if there's nothing to change, we're
			// done.
			return diff, nil
		}

		// Otherwise, rewrite the input file with the formatted version.
		if err := os.WriteFile(path, formatted, 0644); err != nil {
			return diff, fmt.Errorf("couldn't rewrite %q: %w", path, err)
		}
		return diff, nil
	}
}

func getfmter(tp FmterType, readOnly bool) Fmter {
	switch tp {
	case IgnoreFmter:
		return nopfmter
	case YamlFmter:
		return yamlfmt(readOnly)
	default:
		panic(fmt.Errorf("unknown FmterType: %v", tp))
	}
}

// like 'go fmt' but for things under 'data/'
func main() {
	readOnly := getCheckFlag("--check")

	ok := true
	for _, arg := range os.Args[1:] {
		ok = processFile(arg, readOnly) && ok
	}

	if !ok {
		os.Exit(1)
	}
}

func processFile(targetPath string, readOnly bool) bool {
	ext := filepath.Ext(targetPath)
	fmterType, found := extensionToFmter[ext]
	if !found {
		panic(fmt.Errorf("unknown extension(%s) for file %q", ext, targetPath))
	}

	if fmterType == IgnoreFmter {
		return true
	}

	// get and run a formatter for that extension
	fmter := getfmter(fmterType, readOnly)

	changeWanted, err := fmter(targetPath)
	if err != nil {
		panic(fmt.Errorf("formatting %q failed: %w", targetPath, err))
	}

	if changeWanted {
		fmt.Printf("%s\n", targetPath)

		if readOnly {
			return false
		}
	}

	return true
}
