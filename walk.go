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

// WalkAction tells Walk how to continue after visiting a node.
type WalkAction int

const (
	WalkContinue WalkAction = iota
	WalkSkipChildren
	WalkStop
)

// Walk visits n and its descendants pre-order, in source order,
// skipping Deleted tombstones. fn's return value controls descent the
// way kati's AST visitors short-circuit on a bool return, generalized
// to a three-way action since edits need to both skip a subtree and
// abort outright.
func Walk(n Node, fn func(Node) WalkAction) WalkAction {
	if _, ok := n.(*Deleted); ok {
		return WalkContinue
	}
	action := fn(n)
	if action == WalkStop {
		return WalkStop
	}
	if action == WalkSkipChildren {
		return WalkContinue
	}
	for _, child := range children(n) {
		if Walk(child, fn) == WalkStop {
			return WalkStop
		}
	}
	return WalkContinue
}

// children returns n's direct child nodes in source order, flattening
// an If's Orelse chain into the same slice walk as Body so callers
// don't need to special-case conditionals.
func children(n Node) []Node {
	switch v := n.(type) {
	case *Root:
		return v.Body
	case *Include:
		return v.Body
	case *If:
		all := make([]Node, 0, len(v.Body)+len(v.Orelse))
		all = append(all, v.Body...)
		all = append(all, v.Orelse...)
		return all
	case *For:
		return v.Body
	case *Target:
		return v.Body
	}
	return nil
}

// WalkVariables is a convenience wrapper that invokes fn for every
// Variable node in the tree, in source order.
func WalkVariables(n Node, fn func(*Variable) WalkAction) WalkAction {
	return Walk(n, func(node Node) WalkAction {
		v, ok := node.(*Variable)
		if !ok {
			return WalkContinue
		}
		return fn(v)
	})
}

// WalkTargets is a convenience wrapper over every Target node.
func WalkTargets(n Node, fn func(*Target) WalkAction) WalkAction {
	return Walk(n, func(node Node) WalkAction {
		t, ok := node.(*Target)
		if !ok {
			return WalkContinue
		}
		return fn(t)
	})
}
