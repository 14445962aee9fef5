package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/timewinder-dev/springs/cas"
)

// Spec is a run described in TOML:
//
//	[input]
//	file = "day12.txt"
//
//	[run]
//	workers = 32
//	repeat = 5
//	keep_going = false
//	cache_size = 1000
//
//	[expect]
//	part1 = 21
//	part2 = 525152
type Spec struct {
	Input  InputDetails   `toml:"input"`
	Run    RunDetails     `toml:"run"`
	Expect *ExpectDetails `toml:"expect,omitempty"`
}

type InputDetails struct {
	File string `toml:"file,omitempty"`
}

type RunDetails struct {
	Workers   int  `toml:"workers,omitempty"`
	Repeat    int  `toml:"repeat,omitempty"`
	KeepGoing bool `toml:"keep_going,omitempty"`
	CacheSize int  `toml:"cache_size,omitempty"`
}

// ExpectDetails pins the answers a spec must produce.
type ExpectDetails struct {
	Part1 *uint64 `toml:"part1,omitempty"`
	Part2 *uint64 `toml:"part2,omitempty"`
}

func parseSpec(f io.Reader) (*Spec, error) {
	var out Spec
	_, err := toml.NewDecoder(f).Decode(&out)
	return &out, err
}

// LoadSpecFromFile reads a spec. When no input file is named, the spec's own
// name with a .txt extension is used; relative paths resolve against the
// spec's directory.
func LoadSpecFromFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	s, err := parseSpec(f)
	if err != nil {
		return nil, err
	}
	if s.Input.File == "" {
		parts := strings.Split(fi.Name(), ".")
		parts = parts[:len(parts)-1]
		parts = append(parts, "txt")
		s.Input.File = strings.Join(parts, ".")
	}
	if !filepath.IsAbs(s.Input.File) {
		s.Input.File = filepath.Clean(filepath.Join(filepath.Dir(path), s.Input.File))
	}
	return s, nil
}

// BuildExecutor creates an executor configured by the spec. If c is nil a
// memory CAS behind an LRU of the spec's cache size is used.
func (s *Spec) BuildExecutor(c cas.CAS) (*Executor, error) {
	if c == nil {
		c = cas.NewLRUCache(cas.NewMemoryCAS(), s.Run.CacheSize)
	}
	exec := NewExecutor(c)
	if s.Run.Workers != 0 {
		exec.Workers = s.Run.Workers
	}
	if s.Run.Repeat != 0 {
		exec.Repeat = s.Run.Repeat
	}
	exec.KeepGoing = s.Run.KeepGoing
	return exec, nil
}

// Check compares an answer with the spec's expectations, if any.
func (s *Spec) Check(a *Answer) error {
	if s.Expect == nil {
		return nil
	}
	if s.Expect.Part1 != nil && (a.Part1 == nil || a.Part1.Sum != *s.Expect.Part1) {
		return fmt.Errorf("part 1: expected %d, got %s", *s.Expect.Part1, sumString(a.Part1))
	}
	if s.Expect.Part2 != nil && (a.Part2 == nil || a.Part2.Sum != *s.Expect.Part2) {
		return fmt.Errorf("part 2: expected %d, got %s", *s.Expect.Part2, sumString(a.Part2))
	}
	return nil
}

func sumString(r *RunResult) string {
	if r == nil {
		return "no result"
	}
	return strconv.FormatUint(r.Sum, 10)
}

// ReadInput returns the lines of the spec's input file.
func (s *Spec) ReadInput() ([]string, error) {
	f, err := os.Open(s.Input.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines splits r into lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
