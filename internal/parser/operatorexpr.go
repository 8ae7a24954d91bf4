package parser

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
)

// Component is one element of the flat operand/operator stream fed to the
// operator-expression builder.
type Component struct {
	IsOperand bool
	Operand   *ast.Symbol // set when IsOperand

	OpRange module.Range // set when !IsOperand
	Op      lexer.Operator
}

func operandComponent(s *ast.Symbol) Component { return Component{IsOperand: true, Operand: s} }
func operatorComponent(r module.Range, op lexer.Operator) Component {
	return Component{OpRange: r, Op: op}
}

type prefixState int

const (
	stateEither prefixState = iota
	stateExpectOperand
	stateExpectOperator
)

// trimValidPrefix implements the valid-prefix trimming automaton,
// returning the length of the longest syntactically coherent
// prefix of comps.
func trimValidPrefix(comps []Component) int {
	state := stateEither
	difference := 0
	lastValid := -1

	for i, c := range comps {
		if c.IsOperand {
			if state == stateExpectOperator {
				break
			}
			difference--
		} else {
			if state == stateExpectOperand {
				break
			}
			difference += c.Op.Arity()
		}

		switch {
		case difference < 0:
			lastValid = i
			state = stateExpectOperator
		case difference == 0:
			lastValid = i
			difference--
			state = stateExpectOperator
		default:
			state = stateExpectOperand
		}
	}

	return lastValid + 1
}

// shuntingYard converts an infix component prefix to postfix order using
// precedence rules (strictly-higher pops before push;
// equal precedence pops the stack top once, then pushes, giving
// left-associativity).
func shuntingYard(comps []Component) []Component {
	var output []Component
	var stack []Component

	for _, c := range comps {
		if c.IsOperand {
			output = append(output, c)
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].Op.Precedence() > c.Op.Precedence() {
			output = append(output, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 && stack[len(stack)-1].Op.Precedence() == c.Op.Precedence() {
			output = append(output, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return output
}

// postfixToTree performs a linear operand-stack pass, building a single *ast.Symbol tree from postfix-ordered components.
func postfixToTree(postfix []Component) (*ast.Symbol, error) {
	var stack []*ast.Symbol
	for _, c := range postfix {
		if c.IsOperand {
			stack = append(stack, c.Operand)
			continue
		}
		arity := c.Op.Arity()
		if len(stack) < arity {
			return nil, matchFailed(module.Pos{})
		}
		operands := make([]*ast.Symbol, arity)
		copy(operands, stack[len(stack)-arity:])
		stack = stack[:len(stack)-arity]

		rng := c.OpRange
		for _, o := range operands {
			rng = rng.Combined(o.Range)
		}
		stack = append(stack, &ast.Symbol{
			Kind:     ast.KindOperator,
			Range:    rng,
			Operator: c.Op,
			Operands: operands,
		})
	}
	if len(stack) != 1 {
		return nil, matchFailed(module.Pos{})
	}
	return stack[0], nil
}

// BuildOperatorExpression runs the full trim → shunting-yard → tree
// pipeline over comps, returning the resulting expression and the number
// of leading components it consumed. Fails if the valid prefix is shorter
// than two components.
func BuildOperatorExpression(comps []Component, at module.Pos) (*ast.Symbol, int, error) {
	n := trimValidPrefix(comps)
	if n < 2 {
		return nil, 0, matchFailed(at)
	}
	postfix := shuntingYard(comps[:n])
	tree, err := postfixToTree(postfix)
	if err != nil {
		return nil, 0, err
	}
	return tree, n, nil
}
