// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package portfmt

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

// writeByte mirrors kati's ioutil.go helper of the same name: prefer
// io.ByteWriter when the underlying writer has one.
func writeByte(w io.Writer, b byte) error {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw.WriteByte(b)
	}
	_, err := w.Write([]byte{b})
	return err
}

// splitPhysicalLines splits buf into physical lines without their
// terminators, the first step of ReadFromBuffer.
func splitPhysicalLines(buf []byte) []string {
	text := string(buf)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// ReadFromBuffer parses buf (already in memory) as filename and
// returns the resulting tree's Pool-owned Root. It is the design's
// read_from_buffer entry point.
func ReadFromBuffer(buf []byte, filename string) (*Root, *Pool, error) {
	pool := NewPool()
	lines := splitPhysicalLines(buf)
	tz := NewTokenizer(filename)
	tz.FeedAll(lines)
	if err := tz.Err(); err != nil {
		return nil, nil, err
	}
	root, err := Build(tz.Tokens(), filename, pool)
	if err != nil {
		return nil, nil, err
	}
	root.RawLines = lines
	return root, pool, nil
}

// ReadFromFile opens filename and parses it. Any filesystem error is
// surfaced as a ParserError{Kind: Io}.
func ReadFromFile(filename string) (*Root, *Pool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, wrapError(Io, filename, 0, err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, bufio.NewReader(f)); err != nil {
		return nil, nil, wrapError(Io, filename, 0, err)
	}
	return ReadFromBuffer(buf.Bytes(), filename)
}

// WriteToFile serializes root with Format and writes the result to
// filename, truncating any existing content (the design's
// write_to_file entry point). Use "-" for stdout.
func WriteToFile(root *Root, opts FormatOptions, filename string) error {
	var buf bytes.Buffer
	if err := Format(root, opts, &buf); err != nil {
		return err
	}
	if filename == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return wrapError(Io, filename, 0, err)
	}
	return nil
}
