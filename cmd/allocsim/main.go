// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command allocsim drives a heap.Allocator from a line-oriented script
// file of allocate/reallocate/free operations, validating the heap after
// each one.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"github.com/Zoey-2029/Dynamic-Memory-Allocator/heap"
)

var (
	segmentSize  = flag.Int("segment-size", 1<<20, "size in bytes of the backing segment")
	mode         = flag.String("mode", "explicit", "engine mode: explicit or implicit")
	validateEach = flag.Bool("validate-every", true, "run Validate() after every script line")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: allocsim [flags] <script-file>")
	}

	var m heap.Mode
	switch *mode {
	case "explicit":
		m = heap.Explicit
	case "implicit":
		m = heap.Implicit
	default:
		log.Fatalf("unknown -mode %q, want explicit or implicit", *mode)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := run(f, m, *segmentSize, *validateEach); err != nil {
		log.Fatal(err)
	}
}

func run(script *os.File, m heap.Mode, segSize int, validateEach bool) error {
	provider := heap.NewBytesSegment(segSize)
	defer provider.Close()

	a := heap.New(m)
	if err := a.Init(provider.Segment()); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	live := map[int]unsafe.Pointer{}

	sc := bufio.NewScanner(script)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := execLine(a, live, line); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}

		if validateEach {
			if _, err := a.Validate(); err != nil {
				return fmt.Errorf("line %d: %q: heap invalid after op: %w", lineNo, line, err)
			}
		}
	}

	if err := sc.Err(); err != nil {
		return err
	}

	stats, err := a.Validate()
	if err != nil {
		return fmt.Errorf("final validate: %w", err)
	}

	log.Printf("ok: %d lines, %d live allocations, stats=%+v", lineNo, len(live), *stats)
	return nil
}

func execLine(a *heap.Allocator, live map[int]unsafe.Pointer, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "a":
		id, size, err := idAndSize(fields)
		if err != nil {
			return err
		}

		ptr, err := a.Allocate(size)
		if err != nil {
			return err
		}
		live[id] = ptr
		return nil

	case "r":
		id, size, err := idAndSize(fields)
		if err != nil {
			return err
		}

		ptr, err := a.Reallocate(live[id], size)
		if err != nil {
			return err
		}
		live[id] = ptr
		return nil

	case "f":
		if len(fields) != 2 {
			return fmt.Errorf("want: f <id>")
		}

		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}

		a.Free(live[id])
		delete(live, id)
		return nil

	default:
		return fmt.Errorf("unknown op %q", fields[0])
	}
}

func idAndSize(fields []string) (id, size int, err error) {
	if len(fields) != 3 {
		return 0, 0, fmt.Errorf("want: %s <id> <size>", fields[0])
	}

	if id, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, err
	}
	if size, err = strconv.Atoi(fields[2]); err != nil {
		return 0, 0, err
	}
	return id, size, nil
}
