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

// Parser is the package's single entry point: it owns a parsed tree's
// Pool, its Root, and the first ParserError encountered anywhere in
// its lifetime. Every method checks p.err before doing work and, if
// already set, returns immediately -- the same latch-and-no-op shape
// kati's own parser used for its p.err field, generalized here to
// cover read, edit and write instead of just read.
type Parser struct {
	filename string
	pool     *Pool
	root     *Root
	md       *Metadata
	err      *ParserError
}

// NewParserFromFile opens and tokenizes filename, builds its AST and
// applies the mandatory refactor passes, all before returning. A
// Parser constructed this way is immediately ready for Get/edits/Write.
func NewParserFromFile(filename string) *Parser {
	p := &Parser{filename: filename}
	root, pool, err := ReadFromFile(filename)
	if err != nil {
		p.fail(wrapError(Io, filename, 0, err))
		return p
	}
	p.finishParse(root, pool)
	return p
}

// NewParserFromBuffer is NewParserFromFile's in-memory counterpart,
// used by tests and by callers (e.g. portfmt) that read the source
// themselves.
func NewParserFromBuffer(buf []byte, filename string) *Parser {
	p := &Parser{filename: filename}
	root, pool, err := ReadFromBuffer(buf, filename)
	if err != nil {
		p.fail(wrapError(AstBuildFailed, filename, 0, err))
		return p
	}
	p.finishParse(root, pool)
	return p
}

func (p *Parser) finishParse(root *Root, pool *Pool) {
	p.root = root
	p.pool = pool
	p.md = NewMetadata(root)
	if err := ApplyMandatory(root, pool, p.md); err != nil {
		p.fail(wrapError(EditFailed, p.filename, 0, err))
	}
}

func (p *Parser) fail(err *ParserError) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first error this Parser ever latched, or nil.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Filename returns the name the Parser was constructed with.
func (p *Parser) Filename() string { return p.filename }

// Root exposes the parsed tree for callers (Walk, LookupVariable,
// output.go's query helpers) that need direct read access. It
// returns nil once the Parser holds an error.
func (p *Parser) Root() *Root {
	if p.err != nil {
		return nil
	}
	return p.root
}

// Metadata returns the Parser's lazily populated variable cache.
func (p *Parser) Metadata() *Metadata {
	if p.err != nil {
		return nil
	}
	return p.md
}

// LookupVariable returns every assignment to name, in source order.
func (p *Parser) LookupVariable(name string) []*Variable {
	if p.err != nil {
		return nil
	}
	return LookupVariable(p.root, name)
}

// LoadIncludes resolves and splices every local .include this tree
// references, a no-op once the Parser has already failed.
func (p *Parser) LoadIncludes() []error {
	if p.err != nil {
		return []error{p.err}
	}
	errs := LoadLocalIncludes(p.root, p.filename, p.md)
	// A loaded include can introduce new variable assignments the
	// cache already answered queries about; invalidate it.
	p.md = NewMetadata(p.root)
	return errs
}

// ApplyEdit runs a single optional or lint pass. Once the Parser has
// failed, it returns the latched error and does not run e.
func (p *Parser) ApplyEdit(e Edit) ([]Finding, error) {
	if p.err != nil {
		return nil, p.err
	}
	findings, err := ApplyEdit(e, p.root, p.pool, p.md)
	if err != nil {
		p.fail(wrapError(EditFailed, p.filename, 0, err))
		return nil, p.err
	}
	return findings, nil
}

// Format renders the current tree with opts and returns the output.
func (p *Parser) Format(opts FormatOptions) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	var buf []byte
	w := &byteSliceWriter{buf: &buf}
	if err := Format(p.root, opts, w); err != nil {
		p.fail(wrapError(EditFailed, p.filename, 0, err))
		return nil, p.err
	}
	return buf, nil
}

// Write formats the current tree and writes it to filename ("-" for
// stdout), the no-op-after-error counterpart of WriteToFile.
func (p *Parser) Write(opts FormatOptions, filename string) error {
	if p.err != nil {
		return p.err
	}
	if err := WriteToFile(p.root, opts, filename); err != nil {
		p.fail(wrapError(Io, filename, 0, err))
		return p.err
	}
	return nil
}

// Release returns the Parser's Pool to the caller's control, the way
// a kati Evaluator's caller explicitly tore down its SymTab once
// finished. After Release, every Node obtained from this Parser must
// not be used again.
func (p *Parser) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// byteSliceWriter is a minimal io.Writer over a caller-owned []byte
// pointer, used by Parser.Format to avoid pulling in bytes.Buffer for
// a single append loop.
type byteSliceWriter struct {
	buf *[]byte
}

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
