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

// Pool is the scoped arena that owns every node and string produced by
// a single parse. Nodes never outlive their Pool: releasing it (by
// dropping the last reference) invalidates everything it allocated.
// Sub-parsers used by merge/bump-revision get their own Pool; splicing
// an include keeps the child Pool alive by hanging it off the
// Include node rather than copying its tree.
type Pool struct {
	nodes    []Node
	released bool
}

// NewPool creates a fresh, empty arena.
func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) track(n Node) {
	p.nodes = append(p.nodes, n)
}

// Release drops the Pool's bookkeeping slice. It does not need to free
// anything explicit in Go (the garbage collector reclaims node memory
// once nothing references it any longer); Release exists so the
// lifecycle described in the design -- create, mutate, serialize,
// release -- has a concrete call site and so a released Pool can
// refuse further allocation.
func (p *Pool) Release() {
	p.nodes = nil
	p.released = true
}

func (p *Pool) mustBeLive() {
	if p.released {
		panic("portfmt: use of node from a released Pool")
	}
}

func (p *Pool) newRoot() *Root {
	p.mustBeLive()
	n := &Root{}
	p.track(n)
	return n
}

func (p *Pool) newComment() *Comment {
	p.mustBeLive()
	n := &Comment{}
	p.track(n)
	return n
}

func (p *Pool) newExpr() *Expr {
	p.mustBeLive()
	n := &Expr{}
	p.track(n)
	return n
}

func (p *Pool) newInclude() *Include {
	p.mustBeLive()
	n := &Include{}
	p.track(n)
	return n
}

func (p *Pool) newIf() *If {
	p.mustBeLive()
	n := &If{}
	p.track(n)
	return n
}

func (p *Pool) newFor() *For {
	p.mustBeLive()
	n := &For{}
	p.track(n)
	return n
}

func (p *Pool) newTarget() *Target {
	p.mustBeLive()
	n := &Target{}
	p.track(n)
	return n
}

func (p *Pool) newTargetCommand() *TargetCommand {
	p.mustBeLive()
	n := &TargetCommand{}
	p.track(n)
	return n
}

func (p *Pool) newVariable() *Variable {
	p.mustBeLive()
	n := &Variable{}
	p.track(n)
	return n
}
