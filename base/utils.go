package base

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MobRulesGames/isopick/logging"
	"gopkg.in/yaml.v3"
)

var datadir string

var log_out *os.File
var log_console *bytes.Buffer

// Sets the directory that definitions and logs live under.
func SetDatadir(_datadir string) {
	if datadir == _datadir && log_out != nil {
		return
	}

	if datadir != "" {
		panic(fmt.Errorf("double-setting datadir! was %q, new %q", datadir, _datadir))
	}

	datadir = _datadir
	SetupLogger(datadir)
}

func GetDataDir() string {
	return datadir
}

// Only for tests that need to point at a different data directory.
func ResetDatadir() {
	CloseLog()
	datadir = ""
	log_console = nil
}

func SetupLogger(dir string) {
	// If an error happens when making this directory it might already exist,
	// all that really matters is making the log file in the directory.
	os.Mkdir(filepath.Join(dir, "logs"), 0777)
	var err error
	log_out, err = os.Create(filepath.Join(dir, "logs", "isopick.log"))
	if err != nil {
		fmt.Printf("Unable to open log file: %v\nLogging to stdout...\n", err.Error())
		log_out = os.Stdout
	}
	logging.SetupLogger(log_out)
}

// Returns a reader of everything logged from now on, alongside the log file.
// Whatever is logged accumulates until it is read, so only ask for this when
// something drains it.
func ConsoleLog() io.Reader {
	if log_console == nil {
		log_console = &bytes.Buffer{}
		if log_out != nil {
			logging.SetupLogger(io.MultiWriter(log_console, log_out))
		} else {
			logging.SetupLogger(log_console)
		}
	}
	return log_console
}

func CloseLog() {
	if log_out == nil || log_out == os.Stdout {
		return
	}
	log_out.WriteString("END OF LOG\n")
	log_out.Close()
	log_out = nil
}

func LoadYaml(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("couldn't parse %q: %w", path, err)
	}
	return nil
}

func LoadGob(path string, target interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := gob.NewDecoder(f)
	err = dec.Decode(target)
	return err
}

func SaveGob(path string, source interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := gob.NewEncoder(f)
	err = enc.Encode(source)
	return err
}
