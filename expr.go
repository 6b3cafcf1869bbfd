package sqlkit

// Expr is an immutable expression tree node. The zero value is invalid;
// expressions are created with the constructor functions (Col, C, Val,
// Tuple, Func, ...) and grown with the named builder methods. Plain Go
// values passed to the methods are adapted with AdaptAny.
type Expr struct {
	n exprNode
}

type exprNode interface {
	isExpr()
}

type (
	litNode struct {
		v *Value
	}
	colNode struct {
		ref ColumnRef
	}
	asteriskNode struct{}
	tupleNode    struct {
		items []Expr
	}
	customNode struct {
		sql string
	}
	keywordNode struct {
		kw string
	}
	funcNode struct {
		call *FunctionCall
	}
	notNode struct {
		x Expr
	}
	binNode struct {
		op   binOp
		x, y Expr
	}
	likeNode struct {
		not     bool
		ilike   bool
		x       Expr
		pattern string
		escape  rune
	}
	betweenNode struct {
		not       bool
		x, lo, hi Expr
	}
	inNode struct {
		not   bool
		x     Expr
		items []Expr
	}
	inSubNode struct {
		not bool
		x   Expr
		sub *Select
	}
	subNode struct {
		// quantifier is "", "EXISTS", "ANY", "SOME" or "ALL".
		quantifier string
		sub        *Select
	}
	castNode struct {
		x Expr
		t *ColumnType
	}
	errNode struct {
		err error
	}
)

func (litNode) isExpr()      {}
func (colNode) isExpr()      {}
func (asteriskNode) isExpr() {}
func (tupleNode) isExpr()    {}
func (customNode) isExpr()   {}
func (keywordNode) isExpr()  {}
func (funcNode) isExpr()     {}
func (notNode) isExpr()      {}
func (binNode) isExpr()      {}
func (likeNode) isExpr()     {}
func (betweenNode) isExpr()  {}
func (inNode) isExpr()       {}
func (inSubNode) isExpr()    {}
func (subNode) isExpr()      {}
func (castNode) isExpr()     {}
func (errNode) isExpr()      {}

// Col returns an expression referencing the given column.
func Col(ref ColumnRef) Expr {
	return Expr{colNode{ref: ref}}
}

// C parses a dotted column reference and returns it as an expression.
// A parse failure is deferred to render time.
func C(s string) Expr {
	ref, err := ParseColumnRef(s)
	if err != nil {
		return Expr{errNode{err: err}}
	}
	if ref.IsAsterisk() && ref.Table == "" && ref.Schema == "" {
		return Asterisk()
	}
	return Col(ref)
}

// Val adapts a Go value and returns it as an expression. An adaptation
// failure is deferred to render time.
func Val(v any) Expr {
	av, err := AdaptAny(v)
	if err != nil {
		return Expr{errNode{err: err}}
	}
	return Expr{litNode{v: av}}
}

// ValAs adapts a Go value against an explicit column type and returns
// it as an expression.
func ValAs(v any, t *ColumnType) Expr {
	av, err := Adapt(v, t)
	if err != nil {
		return Expr{errNode{err: err}}
	}
	return Expr{litNode{v: av}}
}

// Tuple returns a parenthesized expression list. An empty tuple is
// rejected at render time.
func Tuple(items ...any) Expr {
	return Expr{tupleNode{items: toExprs(items)}}
}

// Asterisk returns the bare * projection.
func Asterisk() Expr {
	return Expr{asteriskNode{}}
}

// Custom returns an expression rendered verbatim. The caller is
// responsible for its validity on the target dialect.
func Custom(sql string) Expr {
	return Expr{customNode{sql: sql}}
}

// Null returns the NULL keyword.
func Null() Expr {
	return Expr{keywordNode{kw: "NULL"}}
}

// CurrentDate returns the CURRENT_DATE keyword.
func CurrentDate() Expr {
	return Expr{keywordNode{kw: "CURRENT_DATE"}}
}

// CurrentTime returns the CURRENT_TIME keyword.
func CurrentTime() Expr {
	return Expr{keywordNode{kw: "CURRENT_TIME"}}
}

// CurrentTimestamp returns the CURRENT_TIMESTAMP keyword.
func CurrentTimestamp() Expr {
	return Expr{keywordNode{kw: "CURRENT_TIMESTAMP"}}
}

// FuncExpr returns a function call as an expression.
func FuncExpr(call *FunctionCall) Expr {
	return Expr{funcNode{call: call}}
}

// Exists returns an EXISTS predicate over the subquery.
func Exists(sub *Select) Expr {
	return Expr{subNode{quantifier: "EXISTS", sub: sub}}
}

// Any returns an ANY quantifier over the subquery.
func Any(sub *Select) Expr {
	return Expr{subNode{quantifier: "ANY", sub: sub}}
}

// Some returns a SOME quantifier over the subquery.
func Some(sub *Select) Expr {
	return Expr{subNode{quantifier: "SOME", sub: sub}}
}

// All returns an ALL quantifier over the subquery.
func All(sub *Select) Expr {
	return Expr{subNode{quantifier: "ALL", sub: sub}}
}

// Subquery returns a scalar subquery expression.
func Subquery(sub *Select) Expr {
	return Expr{subNode{sub: sub}}
}

// Not negates a predicate.
func Not(x Expr) Expr {
	return Expr{notNode{x: x}}
}

func toExpr(v any) Expr {
	switch x := v.(type) {
	case Expr:
		return x
	case *FunctionCall:
		return FuncExpr(x)
	case *Select:
		return Subquery(x)
	case ColumnRef:
		return Col(x)
	default:
		return Val(v)
	}
}

func toExprs(vs []any) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = toExpr(v)
	}
	return out
}

// toColExpr is toExpr with strings parsed as column references. It is
// used in projection, grouping and ordering positions, where a bare
// string names a column rather than a literal.
func toColExpr(v any) Expr {
	if s, ok := v.(string); ok {
		return C(s)
	}
	return toExpr(v)
}

func toColExprs(vs []any) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = toColExpr(v)
	}
	return out
}

func (e Expr) bin(op binOp, v any) Expr {
	return Expr{binNode{op: op, x: e, y: toExpr(v)}}
}

// EQ returns the = comparison.
func (e Expr) EQ(v any) Expr { return e.bin(opEQ, v) }

// NEQ returns the <> comparison.
func (e Expr) NEQ(v any) Expr { return e.bin(opNEQ, v) }

// GT returns the > comparison.
func (e Expr) GT(v any) Expr { return e.bin(opGT, v) }

// GTE returns the >= comparison.
func (e Expr) GTE(v any) Expr { return e.bin(opGTE, v) }

// LT returns the < comparison.
func (e Expr) LT(v any) Expr { return e.bin(opLT, v) }

// LTE returns the <= comparison.
func (e Expr) LTE(v any) Expr { return e.bin(opLTE, v) }

// Add returns the + arithmetic expression.
func (e Expr) Add(v any) Expr { return e.bin(opAdd, v) }

// Sub returns the - arithmetic expression.
func (e Expr) Sub(v any) Expr { return e.bin(opSub, v) }

// Mul returns the * arithmetic expression.
func (e Expr) Mul(v any) Expr { return e.bin(opMul, v) }

// Div returns the / arithmetic expression.
func (e Expr) Div(v any) Expr { return e.bin(opDiv, v) }

// Mod returns the % arithmetic expression.
func (e Expr) Mod(v any) Expr { return e.bin(opMod, v) }

// And combines two predicates with AND.
func (e Expr) And(v any) Expr { return e.bin(opAnd, v) }

// Or combines two predicates with OR.
func (e Expr) Or(v any) Expr { return e.bin(opOr, v) }

// BitAnd returns the bitwise & expression.
func (e Expr) BitAnd(v any) Expr { return e.bin(opBitAnd, v) }

// BitOr returns the bitwise | expression.
func (e Expr) BitOr(v any) Expr { return e.bin(opBitOr, v) }

// LShift returns the << expression.
func (e Expr) LShift(v any) Expr { return e.bin(opLShift, v) }

// RShift returns the >> expression.
func (e Expr) RShift(v any) Expr { return e.bin(opRShift, v) }

// Is returns the IS comparison.
func (e Expr) Is(v any) Expr { return e.bin(opIs, v) }

// IsNot returns the IS NOT comparison.
func (e Expr) IsNot(v any) Expr { return e.bin(opIsNot, v) }

// IsNull returns the IS NULL predicate.
func (e Expr) IsNull() Expr { return e.bin(opIs, Null()) }

// IsNotNull returns the IS NOT NULL predicate.
func (e Expr) IsNotNull() Expr { return e.bin(opIsNot, Null()) }

// Like returns the LIKE predicate. The pattern is passed as a value.
func (e Expr) Like(pattern string) Expr {
	return Expr{likeNode{x: e, pattern: pattern}}
}

// LikeEscape returns the LIKE predicate with an explicit escape character.
func (e Expr) LikeEscape(pattern string, escape rune) Expr {
	return Expr{likeNode{x: e, pattern: pattern, escape: escape}}
}

// NotLike returns the NOT LIKE predicate.
func (e Expr) NotLike(pattern string) Expr {
	return Expr{likeNode{not: true, x: e, pattern: pattern}}
}

// NotLikeEscape returns the NOT LIKE predicate with an explicit escape
// character.
func (e Expr) NotLikeEscape(pattern string, escape rune) Expr {
	return Expr{likeNode{not: true, x: e, pattern: pattern, escape: escape}}
}

// Between returns the BETWEEN predicate.
func (e Expr) Between(lo, hi any) Expr {
	return Expr{betweenNode{x: e, lo: toExpr(lo), hi: toExpr(hi)}}
}

// NotBetween returns the NOT BETWEEN predicate.
func (e Expr) NotBetween(lo, hi any) Expr {
	return Expr{betweenNode{not: true, x: e, lo: toExpr(lo), hi: toExpr(hi)}}
}

// In returns the IN predicate over a value list. An empty list is
// rejected at render time.
func (e Expr) In(vals ...any) Expr {
	return Expr{inNode{x: e, items: toExprs(vals)}}
}

// NotIn returns the NOT IN predicate over a value list.
func (e Expr) NotIn(vals ...any) Expr {
	return Expr{inNode{not: true, x: e, items: toExprs(vals)}}
}

// InSubquery returns the IN predicate over a subquery.
func (e Expr) InSubquery(sub *Select) Expr {
	return Expr{inSubNode{x: e, sub: sub}}
}

// NotInSubquery returns the NOT IN predicate over a subquery.
func (e Expr) NotInSubquery(sub *Select) Expr {
	return Expr{inSubNode{not: true, x: e, sub: sub}}
}

// CastAs returns a CAST of the expression to the given column type.
func (e Expr) CastAs(t *ColumnType) Expr {
	return Expr{castNode{x: e, t: t}}
}

// PGConcat returns the Postgres || concatenation operator.
func (e Expr) PGConcat(v any) Expr { return e.bin(opPGConcat, v) }

// PGContains returns the Postgres @> containment operator.
func (e Expr) PGContains(v any) Expr { return e.bin(opPGContains, v) }

// PGContained returns the Postgres <@ containment operator.
func (e Expr) PGContained(v any) Expr { return e.bin(opPGContained, v) }

// PGMatches returns the Postgres @@ text-search match operator.
func (e Expr) PGMatches(v any) Expr { return e.bin(opPGMatches, v) }

// PGILike returns the Postgres ILIKE predicate.
func (e Expr) PGILike(pattern string) Expr {
	return Expr{likeNode{ilike: true, x: e, pattern: pattern}}
}

// PGNotILike returns the Postgres NOT ILIKE predicate.
func (e Expr) PGNotILike(pattern string) Expr {
	return Expr{likeNode{not: true, ilike: true, x: e, pattern: pattern}}
}

// PGGetJSONField returns the Postgres -> JSON field access operator.
func (e Expr) PGGetJSONField(v any) Expr { return e.bin(opPGJSONGet, v) }

// PGCastJSONField returns the Postgres ->> JSON field access operator,
// casting the result to text.
func (e Expr) PGCastJSONField(v any) Expr { return e.bin(opPGJSONCast, v) }

// SQLiteMatches returns the SQLite MATCH operator.
func (e Expr) SQLiteMatches(v any) Expr { return e.bin(opSQLiteMatch, v) }

// SQLiteGlob returns the SQLite GLOB operator.
func (e Expr) SQLiteGlob(v any) Expr { return e.bin(opSQLiteGlob, v) }

// SQLiteGetJSONField returns the SQLite -> JSON field access operator.
func (e Expr) SQLiteGetJSONField(v any) Expr { return e.bin(opSQLiteJSONGet, v) }

// SQLiteCastJSONField returns the SQLite ->> JSON field access operator.
func (e Expr) SQLiteCastJSONField(v any) Expr { return e.bin(opSQLiteJSONCast, v) }
