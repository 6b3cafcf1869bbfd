package sqlkit

// fnName identifies a catalogued SQL function; fnCustom marks a
// passthrough call rendered with its literal name.
type fnName uint8

const (
	fnCustom fnName = iota
	fnMax
	fnMin
	fnSum
	fnAvg
	fnAbs
	fnCount
	fnIfNull
	fnGreatest
	fnLeast
	fnCharLength
	fnCoalesce
	fnLower
	fnUpper
	fnBitAnd
	fnBitOr
	fnRandom
	fnRound
	fnMD5
	fnNow
	fnRowNumber
	fnRank
	fnDenseRank
)

// FunctionCall is a call to a SQL function. Catalogued functions are
// renamed per dialect at render time; functions a dialect does not
// provide fail with an UnsupportedOperationError.
type FunctionCall struct {
	name     fnName
	custom   string
	args     []Expr
	distinct bool
	window   *Window
}

// Over attaches an OVER clause, making the call a window function.
func (f *FunctionCall) Over(win *Window) *FunctionCall {
	f.window = win
	return f
}

// Expr returns the call as an expression.
func (f *FunctionCall) Expr() Expr {
	return FuncExpr(f)
}

// newCall converts string arguments to column references; literal
// arguments are passed with Val.
func newCall(name fnName, args ...any) *FunctionCall {
	return &FunctionCall{name: name, args: toColExprs(args)}
}

// Max returns the MAX aggregate.
func Max(arg any) *FunctionCall { return newCall(fnMax, arg) }

// Min returns the MIN aggregate.
func Min(arg any) *FunctionCall { return newCall(fnMin, arg) }

// Sum returns the SUM aggregate.
func Sum(arg any) *FunctionCall { return newCall(fnSum, arg) }

// Avg returns the AVG aggregate.
func Avg(arg any) *FunctionCall { return newCall(fnAvg, arg) }

// Abs returns the ABS function.
func Abs(arg any) *FunctionCall { return newCall(fnAbs, arg) }

// Count returns the COUNT aggregate.
func Count(arg any) *FunctionCall { return newCall(fnCount, arg) }

// CountDistinct returns the COUNT(DISTINCT ...) aggregate.
func CountDistinct(arg any) *FunctionCall {
	c := newCall(fnCount, arg)
	c.distinct = true
	return c
}

// IfNull returns the two-argument null coalescing function. It renders
// as IFNULL on MySQL and SQLite and as COALESCE on Postgres.
func IfNull(arg, fallback any) *FunctionCall { return newCall(fnIfNull, arg, fallback) }

// Greatest returns the GREATEST function. SQLite renders it as MAX.
func Greatest(args ...any) *FunctionCall { return newCall(fnGreatest, args...) }

// Least returns the LEAST function. SQLite renders it as MIN.
func Least(args ...any) *FunctionCall { return newCall(fnLeast, args...) }

// CharLength returns the CHAR_LENGTH function. SQLite renders it as
// LENGTH.
func CharLength(arg any) *FunctionCall { return newCall(fnCharLength, arg) }

// Coalesce returns the COALESCE function.
func Coalesce(args ...any) *FunctionCall { return newCall(fnCoalesce, args...) }

// Lower returns the LOWER function.
func Lower(arg any) *FunctionCall { return newCall(fnLower, arg) }

// Upper returns the UPPER function.
func Upper(arg any) *FunctionCall { return newCall(fnUpper, arg) }

// BitAnd returns the BIT_AND aggregate.
func BitAnd(arg any) *FunctionCall { return newCall(fnBitAnd, arg) }

// BitOr returns the BIT_OR aggregate.
func BitOr(arg any) *FunctionCall { return newCall(fnBitOr, arg) }

// Random returns the random number function. It renders as RANDOM on
// Postgres and SQLite and as RAND on MySQL.
func Random() *FunctionCall { return newCall(fnRandom) }

// Round returns the ROUND function.
func Round(args ...any) *FunctionCall { return newCall(fnRound, args...) }

// MD5 returns the MD5 function. SQLite does not provide it.
func MD5(arg any) *FunctionCall { return newCall(fnMD5, arg) }

// Now returns the current timestamp function. SQLite renders it as
// CURRENT_TIMESTAMP.
func Now() *FunctionCall { return newCall(fnNow) }

// RowNumber returns the ROW_NUMBER window function. It is only valid
// with an OVER clause.
func RowNumber() *FunctionCall { return newCall(fnRowNumber) }

// Rank returns the RANK window function.
func Rank() *FunctionCall { return newCall(fnRank) }

// DenseRank returns the DENSE_RANK window function.
func DenseRank() *FunctionCall { return newCall(fnDenseRank) }

// Func returns a call to an arbitrary function, rendered with the given
// name on every dialect.
func Func(name string, args ...any) *FunctionCall {
	return &FunctionCall{name: fnCustom, custom: name, args: toColExprs(args)}
}
