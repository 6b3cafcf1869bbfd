package sqlkit

// Case builds a CASE expression from WHEN/THEN pairs and an optional
// ELSE branch. A CASE without any WHEN clause fails at render time.
type Case struct {
	whens []caseWhen
	els   Expr
}

type caseWhen struct {
	cond Expr
	then Expr
}

// NewCase returns an empty CASE expression builder.
func NewCase() *Case { return &Case{} }

// When appends a WHEN condition with its THEN result. The result may be
// a plain Go value or an Expr.
func (c *Case) When(cond Expr, then any) *Case {
	c.whens = append(c.whens, caseWhen{cond: cond, then: toExpr(then)})
	return c
}

// Else sets the ELSE branch. Without it, unmatched rows yield NULL.
func (c *Case) Else(v any) *Case {
	c.els = toExpr(v)
	return c
}

// Expr returns the CASE statement as an expression usable in any
// expression position.
func (c *Case) Expr() Expr {
	return Expr{caseNode{c: c}}
}

type caseNode struct{ c *Case }

func (caseNode) isExpr() {}

func (c *Case) render(w *writer) {
	if len(c.whens) == 0 {
		w.fail(NewStructuralError("CASE has no WHEN clauses"))
		return
	}
	w.write("CASE")
	for _, wh := range c.whens {
		w.write(" WHEN ")
		w.expr(wh.cond)
		w.write(" THEN ")
		w.expr(wh.then)
	}
	if c.els.n != nil {
		w.write(" ELSE ")
		w.expr(c.els)
	}
	w.write(" END")
}
