package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndcalc-io/ndcalc/token"
)

func TestString(t *testing.T) {
	// pow(x, 2) + (-y) * 3
	tree := &Infix{
		X: &Call{
			Name: "pow",
			Args: []Node{
				&Variable{Name: "x", Index: 0},
				&Number{Literal: "2"},
			},
		},
		Op: "+",
		Y: &Infix{
			X:  &Prefix{Op: "-", X: &Variable{Name: "y", Index: 1}},
			Op: "*",
			Y:  &Number{Literal: "3"},
		},
	}
	require.Equal(t, "(pow(x, 2) + ((-y) * 3))", tree.String())
}

func TestPos(t *testing.T) {
	variable := &Variable{NamePos: token.Position{Offset: 4}, Name: "x"}
	infix := &Infix{
		X:  variable,
		Op: "+",
		Y:  &Number{ValuePos: token.Position{Offset: 8}, Literal: "1"},
	}
	require.Equal(t, 4, infix.Pos().Offset)

	prefix := &Prefix{OpPos: token.Position{Offset: 0}, Op: "-", X: variable}
	require.Equal(t, 0, prefix.Pos().Offset)
}

func TestWalk(t *testing.T) {
	tree := &Infix{
		X:  &Variable{Name: "x"},
		Op: "*",
		Y: &Call{
			Name: "sin",
			Args: []Node{&Variable{Name: "y"}},
		},
	}

	var visited []string
	Walk(tree, func(n Node) bool {
		visited = append(visited, n.String())
		return true
	})
	require.Equal(t, []string{"(x * sin(y))", "x", "sin(y)", "y"}, visited)
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := &Infix{
		X:  &Call{Name: "sin", Args: []Node{&Variable{Name: "x"}}},
		Op: "+",
		Y:  &Number{Literal: "1"},
	}

	var visited []string
	Walk(tree, func(n Node) bool {
		visited = append(visited, n.String())
		_, isCall := n.(*Call)
		return !isCall
	})
	require.Equal(t, []string{"(sin(x) + 1)", "sin(x)", "1"}, visited)
}

func TestWalkNil(t *testing.T) {
	called := false
	Walk(nil, func(Node) bool {
		called = true
		return true
	})
	require.False(t, called)
}
