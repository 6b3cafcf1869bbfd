package sqlkit

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/syssam/sqlkit/dialect"
)

// Statement is implemented by every renderable statement. Build returns
// parameterized SQL with the collected values in placeholder order;
// ToSQL inlines the values as escaped literals. Rendering never mutates
// the statement, so both can be called repeatedly and in any order.
type Statement interface {
	Build(d string) (string, []*Value, error)
	ToSQL(d string) (string, error)
}

type dmask uint8

const (
	dSQLite dmask = 1 << iota
	dMySQL
	dPG
	dAll = dSQLite | dMySQL | dPG
)

type dialectSpec struct {
	name        string
	mask        dmask
	quote       byte
	dollarArgs  bool // $1, $2, ... instead of ?
	backslashes bool // backslash is an escape character in strings
}

var dialectSpecs = map[string]*dialectSpec{
	dialect.SQLite:   {name: dialect.SQLite, mask: dSQLite, quote: '"'},
	dialect.MySQL:    {name: dialect.MySQL, mask: dMySQL, quote: '`', backslashes: true},
	dialect.Postgres: {name: dialect.Postgres, mask: dPG, quote: '"', dollarArgs: true},
}

type renderer interface {
	render(w *writer)
}

func buildStmt(s renderer, d string, inline bool) (string, []*Value, error) {
	name, err := dialect.Parse(d)
	if err != nil {
		return "", nil, err
	}
	w := &writer{spec: dialectSpecs[name], inline: inline}
	s.render(w)
	if w.err != nil {
		return "", nil, w.err
	}
	return w.sb.String(), w.args, nil
}

// writer accumulates rendered SQL and collected parameters. The first
// error wins and voids the output.
type writer struct {
	spec   *dialectSpec
	sb     strings.Builder
	args   []*Value
	inline bool
	err    error
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) write(s string) {
	w.sb.WriteString(s)
}

func (w *writer) byte(b byte) {
	w.sb.WriteByte(b)
}

// ident writes a quoted identifier, doubling embedded quote characters.
func (w *writer) ident(name string) {
	q := w.spec.quote
	w.sb.WriteByte(q)
	for i := 0; i < len(name); i++ {
		if name[i] == q {
			w.sb.WriteByte(q)
		}
		w.sb.WriteByte(name[i])
	}
	w.sb.WriteByte(q)
}

func (w *writer) columnRef(r ColumnRef) {
	if r.Name == "" {
		w.fail(NewStructuralError("column reference has no name"))
		return
	}
	if r.Schema != "" && r.Table == "" {
		w.fail(NewStructuralError("column reference %q has a schema but no table", r.Name))
		return
	}
	if r.Schema != "" {
		w.ident(r.Schema)
		w.byte('.')
	}
	if r.Table != "" {
		w.ident(r.Table)
		w.byte('.')
	}
	if r.IsAsterisk() {
		w.byte('*')
	} else {
		w.ident(r.Name)
	}
}

func (w *writer) tableName(t TableName) {
	if t.Name == "" {
		w.fail(NewStructuralError("table name is empty"))
		return
	}
	if t.Database != "" {
		w.ident(t.Database)
		w.byte('.')
	}
	if t.Schema != "" {
		w.ident(t.Schema)
		w.byte('.')
	}
	w.ident(t.Name)
}

// value writes a parameter placeholder, or the inline literal when the
// writer renders for ToSQL.
func (w *writer) value(v *Value) {
	if v == nil {
		w.fail(NewStructuralError("nil value"))
		return
	}
	if (v.kind == KindArray || v.kind == KindVector) && w.spec.name != dialect.Postgres {
		w.fail(NewUnsupportedOperationError(v.kind.String()+" value", w.spec.name))
		return
	}
	if !w.inline {
		w.args = append(w.args, v)
		if w.spec.dollarArgs {
			w.byte('$')
			w.write(strconv.Itoa(len(w.args)))
		} else {
			w.byte('?')
		}
		return
	}
	w.inlineValue(v)
}

func (w *writer) inlineValue(v *Value) {
	switch v.kind {
	case KindNull:
		w.write("NULL")
	case KindBool:
		if v.b {
			w.write("TRUE")
		} else {
			w.write("FALSE")
		}
	case KindInt, KindYear:
		w.write(strconv.FormatInt(v.i, 10))
	case KindUint:
		w.write(strconv.FormatUint(v.u, 10))
	case KindFloat:
		w.write(strconv.FormatFloat(v.f, 'f', -1, 64))
	case KindString, KindJSON:
		w.stringLiteral(v.s)
	case KindBytes:
		if w.spec.name == dialect.Postgres {
			w.write(`'\x`)
			w.write(hex.EncodeToString(v.by))
			w.byte('\'')
		} else {
			w.write("x'")
			w.write(hex.EncodeToString(v.by))
			w.byte('\'')
		}
	case KindDateTime:
		w.stringLiteral(v.t.Format("2006-01-02 15:04:05"))
	case KindDate:
		w.stringLiteral(v.t.Format("2006-01-02"))
	case KindTime:
		w.stringLiteral(v.t.Format("15:04:05"))
	case KindDecimal:
		w.write(v.dec.String())
	case KindUUID:
		w.stringLiteral(v.uid.String())
	case KindArray:
		w.write("ARRAY[")
		for i, e := range v.arr {
			if i > 0 {
				w.write(", ")
			}
			w.inlineValue(e)
		}
		w.byte(']')
	case KindVector:
		w.stringLiteral(vectorLiteral(v.vec))
	default:
		w.fail(NewStructuralError("cannot render value of kind %s", v.kind))
	}
}

func (w *writer) stringLiteral(s string) {
	w.byte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			w.write("''")
		case '\\':
			if w.spec.backslashes {
				w.write(`\\`)
			} else {
				w.byte('\\')
			}
		default:
			w.sb.WriteRune(r)
		}
	}
	w.byte('\'')
}

func vectorLiteral(vec []float64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range vec {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Binary operator catalogue. Precedence drives parenthesization only;
// it does not need to match any particular dialect's parser exactly, as
// long as the rendered SQL is unambiguous.
type binOp uint8

const (
	opEQ binOp = iota
	opNEQ
	opGT
	opGTE
	opLT
	opLTE
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opAnd
	opOr
	opBitAnd
	opBitOr
	opLShift
	opRShift
	opIs
	opIsNot
	opPGConcat
	opPGContains
	opPGContained
	opPGMatches
	opPGJSONGet
	opPGJSONCast
	opSQLiteMatch
	opSQLiteGlob
	opSQLiteJSONGet
	opSQLiteJSONCast
)

type opInfo struct {
	sym      string
	prec     int
	assoc    bool
	dialects dmask
}

var opTable = map[binOp]opInfo{
	opEQ:             {"=", 4, false, dAll},
	opNEQ:            {"<>", 4, false, dAll},
	opGT:             {">", 4, false, dAll},
	opGTE:            {">=", 4, false, dAll},
	opLT:             {"<", 4, false, dAll},
	opLTE:            {"<=", 4, false, dAll},
	opAdd:            {"+", 6, true, dAll},
	opSub:            {"-", 6, false, dAll},
	opMul:            {"*", 7, true, dAll},
	opDiv:            {"/", 7, false, dAll},
	opMod:            {"%", 7, false, dAll},
	opAnd:            {"AND", 2, true, dAll},
	opOr:             {"OR", 1, true, dAll},
	opBitAnd:         {"&", 5, true, dAll},
	opBitOr:          {"|", 5, true, dAll},
	opLShift:         {"<<", 5, false, dAll},
	opRShift:         {">>", 5, false, dAll},
	opIs:             {"IS", 4, false, dAll},
	opIsNot:          {"IS NOT", 4, false, dAll},
	opPGConcat:       {"||", 8, true, dPG},
	opPGContains:     {"@>", 4, false, dPG},
	opPGContained:    {"<@", 4, false, dPG},
	opPGMatches:      {"@@", 4, false, dPG},
	opPGJSONGet:      {"->", 8, false, dPG},
	opPGJSONCast:     {"->>", 8, false, dPG},
	opSQLiteMatch:    {"MATCH", 4, false, dSQLite},
	opSQLiteGlob:     {"GLOB", 4, false, dSQLite},
	opSQLiteJSONGet:  {"->", 8, false, dSQLite},
	opSQLiteJSONCast: {"->>", 8, false, dSQLite},
}

func nodePrec(n exprNode) int {
	switch x := n.(type) {
	case binNode:
		return opTable[x.op].prec
	case notNode:
		return 3
	case likeNode, betweenNode, inNode, inSubNode:
		return 4
	default:
		return 100
	}
}

// expr renders e as a top-level expression.
func (w *writer) expr(e Expr) {
	w.exprPrec(e, 0, true, false)
}

func (w *writer) exprPrec(e Expr, parentPrec int, assoc, right bool) {
	if e.n == nil {
		w.fail(NewStructuralError("empty expression"))
		return
	}
	childPrec := nodePrec(e.n)
	parens := childPrec < parentPrec ||
		(childPrec == parentPrec && (!assoc && (right || parentPrec == 4)))
	if parens {
		w.byte('(')
	}
	w.renderNode(e.n)
	if parens {
		w.byte(')')
	}
}

func (w *writer) renderNode(n exprNode) {
	switch x := n.(type) {
	case errNode:
		w.fail(x.err)
	case litNode:
		w.value(x.v)
	case colNode:
		w.columnRef(x.ref)
	case asteriskNode:
		w.byte('*')
	case customNode:
		w.write(x.sql)
	case keywordNode:
		w.write(x.kw)
	case tupleNode:
		if len(x.items) == 0 {
			w.fail(NewStructuralError("tuple cannot be empty"))
			return
		}
		w.byte('(')
		for i, item := range x.items {
			if i > 0 {
				w.write(", ")
			}
			w.expr(item)
		}
		w.byte(')')
	case funcNode:
		w.funcCall(x.call)
	case caseNode:
		x.c.render(w)
	case notNode:
		w.write("NOT ")
		w.exprPrec(x.x, 3, false, false)
	case binNode:
		info, ok := opTable[x.op]
		if !ok {
			w.fail(NewStructuralError("unknown operator"))
			return
		}
		if info.dialects&w.spec.mask == 0 {
			w.fail(NewUnsupportedOperationError("operator "+info.sym, w.spec.name))
			return
		}
		w.exprPrec(x.x, info.prec, info.assoc, false)
		w.byte(' ')
		w.write(info.sym)
		w.byte(' ')
		w.exprPrec(x.y, info.prec, info.assoc, true)
	case likeNode:
		if x.ilike && w.spec.name != dialect.Postgres {
			w.fail(NewUnsupportedOperationError("operator ILIKE", w.spec.name))
			return
		}
		w.exprPrec(x.x, 4, false, false)
		switch {
		case x.not && x.ilike:
			w.write(" NOT ILIKE ")
		case x.not:
			w.write(" NOT LIKE ")
		case x.ilike:
			w.write(" ILIKE ")
		default:
			w.write(" LIKE ")
		}
		pv, err := Adapt(x.pattern, Varchar(0))
		if err != nil {
			w.fail(err)
			return
		}
		w.value(pv)
		if x.escape != 0 {
			w.write(" ESCAPE ")
			w.stringLiteral(string(x.escape))
		}
	case betweenNode:
		w.exprPrec(x.x, 4, false, false)
		if x.not {
			w.write(" NOT BETWEEN ")
		} else {
			w.write(" BETWEEN ")
		}
		w.exprPrec(x.lo, 5, false, false)
		w.write(" AND ")
		w.exprPrec(x.hi, 5, false, false)
	case inNode:
		if len(x.items) == 0 {
			w.fail(NewStructuralError("IN list cannot be empty"))
			return
		}
		w.exprPrec(x.x, 4, false, false)
		if x.not {
			w.write(" NOT IN (")
		} else {
			w.write(" IN (")
		}
		for i, item := range x.items {
			if i > 0 {
				w.write(", ")
			}
			w.expr(item)
		}
		w.byte(')')
	case inSubNode:
		if x.sub == nil {
			w.fail(NewStructuralError("IN subquery is nil"))
			return
		}
		w.exprPrec(x.x, 4, false, false)
		if x.not {
			w.write(" NOT IN (")
		} else {
			w.write(" IN (")
		}
		x.sub.render(w)
		w.byte(')')
	case subNode:
		if x.sub == nil {
			w.fail(NewStructuralError("subquery is nil"))
			return
		}
		if x.quantifier != "" {
			w.write(x.quantifier)
			w.byte(' ')
		}
		w.byte('(')
		x.sub.render(w)
		w.byte(')')
	case castNode:
		name, err := typeName(w.spec, x.t)
		if err != nil {
			w.fail(err)
			return
		}
		w.write("CAST(")
		w.expr(x.x)
		w.write(" AS ")
		w.write(name)
		w.byte(')')
	default:
		w.fail(NewStructuralError("unknown expression node"))
	}
}

func (w *writer) funcCall(c *FunctionCall) {
	if c == nil {
		w.fail(NewStructuralError("nil function call"))
		return
	}
	if c.name == fnNow && w.spec.name == dialect.SQLite {
		w.write("CURRENT_TIMESTAMP")
		if c.window != nil {
			w.fail(NewStructuralError("CURRENT_TIMESTAMP cannot take an OVER clause"))
		}
		return
	}
	name := c.custom
	if c.name != fnCustom {
		var err error
		name, err = fnSQLName(w.spec.name, c.name)
		if err != nil {
			w.fail(err)
			return
		}
	}
	w.write(name)
	w.byte('(')
	if c.distinct {
		w.write("DISTINCT ")
	}
	for i, arg := range c.args {
		if i > 0 {
			w.write(", ")
		}
		w.expr(arg)
	}
	w.byte(')')
	if c.window != nil {
		w.write(" OVER ")
		c.window.render(w)
	}
}

func fnSQLName(d string, f fnName) (string, error) {
	switch f {
	case fnMax:
		return "MAX", nil
	case fnMin:
		return "MIN", nil
	case fnSum:
		return "SUM", nil
	case fnAvg:
		return "AVG", nil
	case fnAbs:
		return "ABS", nil
	case fnCount:
		return "COUNT", nil
	case fnIfNull:
		if d == dialect.Postgres {
			return "COALESCE", nil
		}
		return "IFNULL", nil
	case fnGreatest:
		if d == dialect.SQLite {
			return "MAX", nil
		}
		return "GREATEST", nil
	case fnLeast:
		if d == dialect.SQLite {
			return "MIN", nil
		}
		return "LEAST", nil
	case fnCharLength:
		if d == dialect.SQLite {
			return "LENGTH", nil
		}
		return "CHAR_LENGTH", nil
	case fnCoalesce:
		return "COALESCE", nil
	case fnLower:
		return "LOWER", nil
	case fnUpper:
		return "UPPER", nil
	case fnBitAnd:
		if d == dialect.SQLite {
			return "", NewUnsupportedOperationError("function BIT_AND", d)
		}
		return "BIT_AND", nil
	case fnBitOr:
		if d == dialect.SQLite {
			return "", NewUnsupportedOperationError("function BIT_OR", d)
		}
		return "BIT_OR", nil
	case fnRandom:
		if d == dialect.MySQL {
			return "RAND", nil
		}
		return "RANDOM", nil
	case fnRound:
		return "ROUND", nil
	case fnMD5:
		if d == dialect.SQLite {
			return "", NewUnsupportedOperationError("function MD5", d)
		}
		return "MD5", nil
	case fnNow:
		return "NOW", nil
	case fnRowNumber:
		return "ROW_NUMBER", nil
	case fnRank:
		return "RANK", nil
	case fnDenseRank:
		return "DENSE_RANK", nil
	default:
		return "", NewStructuralError("unknown function")
	}
}
