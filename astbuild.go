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

import "strings"

// builder folds a token stream into a typed tree, the way kati's
// parser.go threads a node_stack/if_stack pair through addStatement;
// here the two stacks are explicit fields instead of closures over a
// single outStmts pointer, because portfmt needs to reopen the same
// container (a Target's body) from multiple call sites (TARGET_START,
// TARGET_COMMAND_START, CONDITIONAL_END-for).
type builder struct {
	filename   string
	pool       *Pool
	root       *Root
	nodeStack  []containerRef
	ifStack    []*If
	comments   []string
	commentAt  LineRange
	err        *ParserError
}

// containerRef is a mutable reference to a []Node slot: either Root.Body,
// an If.Body/If.Orelse, a For.Body, or a Target.Body.
type containerRef struct {
	append func(Node)
	node   Node // the owner, for parent assignment; nil for Root
}

func (b *builder) fail(kind ErrorKind, line int, f string, a ...interface{}) {
	if b.err != nil {
		return
	}
	b.err = newError(kind, b.filename, line, f, a...)
}

func (b *builder) top() containerRef {
	return b.nodeStack[len(b.nodeStack)-1]
}

func (b *builder) push(ref containerRef) {
	b.nodeStack = append(b.nodeStack, ref)
}

func (b *builder) pop() {
	if len(b.nodeStack) > 1 {
		b.nodeStack = b.nodeStack[:len(b.nodeStack)-1]
	}
}

func (b *builder) addNode(n Node) {
	ref := b.top()
	nb := n.base()
	nb.Parent = ref.node
	b.flushComments()
	ref.append(n)
}

func (b *builder) flushComments() {
	if len(b.comments) == 0 {
		return
	}
	c := b.pool.newComment()
	c.Lines = b.comments
	c.LineStart = b.commentAt.Start
	c.LineEnd = b.commentAt.End
	ref := b.top()
	c.Parent = ref.node
	ref.append(c)
	b.comments = nil
}

// Build consumes tokens into a fresh tree owned by pool.
func Build(tokens []Token, filename string, pool *Pool) (*Root, error) {
	b := &builder{filename: filename, pool: pool}
	b.root = pool.newRoot()
	b.root.LineStart = 1
	rootAppend := func(n Node) { b.root.Body = append(b.root.Body, n) }
	b.push(containerRef{append: rootAppend, node: nil})

	var lastTarget *Target
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Type {
		case TokComment:
			if len(b.comments) == 0 {
				b.commentAt = tok.Range
			} else {
				b.commentAt.End = tok.Range.End
			}
			b.comments = append(b.comments, tok.Data)
			i++

		case TokVariableStart:
			j := i + 1
			v := b.pool.newVariable()
			v.Name = tok.VarName
			v.LineStart = tok.Range.Start
			first := tokens[j]
			v.Modifier = first.VarModifier
			v.TrailingPlus = first.VarPlus
			j++
			for tokens[j].Type == TokVariableToken {
				v.Words = append(v.Words, tokens[j].Data)
				j++
			}
			end := tokens[j]
			v.Comment = end.Comment
			v.LineEnd = end.Range.End
			b.addNode(v)
			i = j + 1

		case TokTargetStart:
			if _, ok := b.top().node.(*Target); ok {
				b.pop()
			}
			tgt := b.pool.newTarget()
			tgt.Kind = TargetNamed
			tgt.LineStart = tok.Range.Start
			tgt.LineEnd = tok.Range.End
			parseTargetHeader(tgt, tok.Data)
			b.addNode(tgt)
			tgtBody := tgt
			b.push(containerRef{append: func(n Node) { tgtBody.Body = append(tgtBody.Body, n) }, node: tgt})
			lastTarget = tgt
			i++

		case TokTargetEnd:
			if _, ok := b.top().node.(*Target); ok {
				b.pop()
			}
			i++

		case TokTargetCommandStart:
			tgt, ok := b.top().node.(*Target)
			if !ok {
				tgt = b.pool.newTarget()
				tgt.Kind = TargetUnassociated
				tgt.LineStart = tok.Range.Start
				tgt.LineEnd = tok.Range.End
				b.addNode(tgt)
				tb := tgt
				b.push(containerRef{append: func(n Node) { tb.Body = append(tb.Body, n) }, node: tgt})
				lastTarget = tgt
			}
			cmd := b.pool.newTargetCommand()
			cmd.Target = tgt
			cmd.LineStart = tok.Range.Start
			j := i + 1
			var words []string
			for tokens[j].Type == TokTargetCommandToken {
				words = append(words, tokens[j].Data)
				j++
			}
			cmd.Flags, cmd.Words = parseCommandFlags(words)
			end := tokens[j]
			cmd.Comment = end.Comment
			cmd.LineEnd = end.Range.End
			cmd.Parent = tgt
			b.flushComments()
			tgt.Body = append(tgt.Body, cmd)
			i = j + 1
			_ = lastTarget

		case TokConditionalStart:
			i = b.handleConditional(tokens, i)

		default:
			i++
		}
		if b.err != nil {
			return nil, b.err
		}
	}
	b.flushComments()
	if len(b.ifStack) > 0 {
		return nil, newError(AstBuildFailed, b.filename, tokens[len(tokens)-1].Range.Start, "unterminated .if")
	}
	b.root.LineEnd = 1
	if len(tokens) > 0 {
		b.root.LineEnd = tokens[len(tokens)-1].Range.End
	}
	return b.root, nil
}

// handleConditional processes one CONDITIONAL_START..CONDITIONAL_END
// run starting at i, returning the index just past CONDITIONAL_END.
func (b *builder) handleConditional(tokens []Token, i int) int {
	directive := tokens[i].CondType
	j := i + 1 // skip START
	j++        // skip directive token
	var words []string
	for tokens[j].Type == TokConditionalToken {
		words = append(words, tokens[j].Data)
		j++
	}
	end := tokens[j]
	indent := end.Data
	comment := end.Comment
	rng := LineRange{tokens[i].Range.Start, end.Range.End}

	switch {
	case directive == "for":
		f := b.pool.newFor()
		f.Indent = indent
		f.LineStart = rng.Start
		inIdx := -1
		for k, w := range words {
			if w == "in" {
				inIdx = k
				break
			}
		}
		if inIdx < 0 {
			b.fail(AstBuildFailed, rng.Start, ".for without 'in'")
			return j + 1
		}
		f.Bindings = words[:inIdx]
		f.Words = words[inIdx+1:]
		b.addNode(f)
		fb := f
		b.push(containerRef{append: func(n Node) { fb.Body = append(fb.Body, n) }, node: f})

	case directive == "endfor":
		if _, ok := b.top().node.(*For); !ok {
			b.fail(AstBuildFailed, rng.Start, ".endfor without matching .for")
			return j + 1
		}
		fr := b.top().node.(*For)
		fr.EndComment = comment
		fr.LineEnd = rng.End
		b.pop()

	case strings.HasPrefix(directive, "elif"):
		if len(b.ifStack) == 0 {
			b.fail(AstBuildFailed, rng.Start, "*** extraneous %q", directive)
			return j + 1
		}
		n := b.pool.newIf()
		n.Kind = ifKindFor(directive)
		n.Test = words
		n.Indent = indent
		n.Comment = comment
		n.LineStart = rng.Start
		parent := b.ifStack[len(b.ifStack)-1]
		n.IfParent = parent
		n.Parent = parent
		parent.Orelse = append(parent.Orelse, n)
		b.pop() // close the previous link's body container
		b.ifStack[len(b.ifStack)-1] = n
		cur := n
		b.push(containerRef{append: func(c Node) { cur.Body = append(cur.Body, c) }, node: n})

	case strings.HasPrefix(directive, "if"):
		n := b.pool.newIf()
		n.Kind = ifKindFor(directive)
		n.Test = words
		n.Indent = indent
		n.Comment = comment
		n.LineStart = rng.Start
		b.addNode(n)
		b.ifStack = append(b.ifStack, n)
		cur := n
		b.push(containerRef{append: func(c Node) { cur.Body = append(cur.Body, c) }, node: n})

	case directive == "else":
		if len(b.ifStack) == 0 {
			b.fail(AstBuildFailed, rng.Start, `*** extraneous "else"`)
			return j + 1
		}
		parent := b.ifStack[len(b.ifStack)-1]
		n := b.pool.newIf()
		n.Kind = IfElse
		n.Indent = indent
		n.Comment = comment
		n.LineStart = rng.Start
		n.IfParent = parent
		n.Parent = parent
		parent.Orelse = append(parent.Orelse, n)
		b.pop()
		b.ifStack[len(b.ifStack)-1] = n
		cur := n
		b.push(containerRef{append: func(c Node) { cur.Body = append(cur.Body, c) }, node: n})

	case directive == "endif":
		if len(b.ifStack) == 0 {
			b.fail(AstBuildFailed, rng.Start, `*** extraneous "endif"`)
			return j + 1
		}
		cur := b.ifStack[len(b.ifStack)-1]
		cur.EndComment = comment
		cur.LineEnd = rng.End
		// the end_comment/line_end are recorded on the final link of
		// the chain; walk back to the chain's head for bookkeeping
		// that cares about the overall .if's span.
		head := cur
		for head.IfParent != nil {
			head = head.IfParent
		}
		if head != cur {
			head.LineEnd = rng.End
		}
		b.pop()
		b.ifStack = b.ifStack[:len(b.ifStack)-1]

	case directive == "include" || directive == "sinclude" || directive == "-include" || directive == "dinclude":
		inc := b.pool.newInclude()
		inc.Indent = indent
		inc.Comment = comment
		inc.LineStart = rng.Start
		inc.LineEnd = rng.End
		switch directive {
		case "include":
			inc.Kind = IncludeBmake
		case "sinclude", "-include", "dinclude":
			inc.Kind = IncludeBmakeOptional
		}
		path := strings.Join(words, " ")
		if strings.HasPrefix(path, "<") && strings.HasSuffix(path, ">") {
			inc.Sys = true
			inc.Path = path[1 : len(path)-1]
		} else {
			inc.Path = strings.Trim(path, `"`)
		}
		b.addNode(inc)

	default:
		e := b.pool.newExpr()
		e.Indent = indent
		e.Words = words
		e.Comment = comment
		e.LineStart = rng.Start
		e.LineEnd = rng.End
		e.Kind = exprKindFor(directive)
		if len(words) == 0 && e.Kind != ExprUnexport && e.Kind != ExprUnexportEnv {
			b.fail(AstBuildFailed, rng.Start, "%q directive needs an argument", directive)
			return j + 1
		}
		b.addNode(e)
	}
	return j + 1
}

func ifKindFor(directive string) IfKind {
	switch directive {
	case "ifdef", "elifdef":
		return IfDef
	case "ifndef", "elifndef":
		return IfNdef
	case "ifmake", "elifmake":
		return IfMake
	case "ifnmake", "elifnmake":
		return IfNmake
	default:
		return IfIf
	}
}

func exprKindFor(directive string) ExprKind {
	switch directive {
	case "error":
		return ExprError
	case "warning":
		return ExprWarning
	case "info":
		return ExprInfo
	case "export":
		return ExprExport
	case "export-env":
		return ExprExportEnv
	case "export.env":
		return ExprExportEnv
	case "export-literal":
		return ExprExportLiteral
	case "unexport":
		return ExprUnexport
	case "unexport-env":
		return ExprUnexportEnv
	default:
		return ExprUndef
	}
}

// parseCommandFlags splits the leading run of @/-/+ single-char tokens
// (in any order, any repetition) off a recipe line's first word.
func parseCommandFlags(words []string) (CommandFlag, []string) {
	if len(words) == 0 {
		return 0, nil
	}
	first := words[0]
	var flags CommandFlag
	i := 0
	for i < len(first) {
		switch first[i] {
		case '@':
			flags |= Silent
		case '-':
			flags |= IgnoreError
		case '+':
			flags |= AlwaysExecute
		default:
			goto done
		}
		i++
	}
done:
	rest := first[i:]
	out := make([]string, 0, len(words))
	if rest != "" {
		out = append(out, rest)
	}
	out = append(out, words[1:]...)
	return flags, out
}

// parseTargetHeader splits a "targets [targets...] :[:] deps..." line
// captured verbatim by the tokenizer into sources/dependencies.
func parseTargetHeader(t *Target, line string) {
	idx := findUnquotedAny(line, ":!")
	if idx < 0 {
		t.Sources = splitWords(line)
		return
	}
	lhs := line[:idx]
	rhs := line[idx:]
	t.DoubleColon = strings.HasPrefix(rhs, "::")
	if t.DoubleColon {
		rhs = rhs[2:]
	} else {
		rhs = rhs[1:]
	}
	t.Sources = splitWords(lhs)
	t.Dependencies = splitWords(rhs)
}
