package sqlkit

import (
	"strconv"
)

type frameBoundKind uint8

const (
	boundUnboundedPreceding frameBoundKind = iota
	boundPreceding
	boundCurrentRow
	boundFollowing
	boundUnboundedFollowing
)

// FrameBound is one endpoint of a window frame.
type FrameBound struct {
	kind frameBoundKind
	n    uint32
}

// UnboundedPreceding starts the frame at the first partition row.
func UnboundedPreceding() FrameBound {
	return FrameBound{kind: boundUnboundedPreceding}
}

// Preceding bounds the frame n rows before the current row.
func Preceding(n uint32) FrameBound {
	return FrameBound{kind: boundPreceding, n: n}
}

// CurrentRow bounds the frame at the current row.
func CurrentRow() FrameBound {
	return FrameBound{kind: boundCurrentRow}
}

// Following bounds the frame n rows after the current row.
func Following(n uint32) FrameBound {
	return FrameBound{kind: boundFollowing, n: n}
}

// UnboundedFollowing ends the frame at the last partition row.
func UnboundedFollowing() FrameBound {
	return FrameBound{kind: boundUnboundedFollowing}
}

func (b FrameBound) render(w *writer) {
	switch b.kind {
	case boundUnboundedPreceding:
		w.write("UNBOUNDED PRECEDING")
	case boundPreceding:
		w.write(strconv.FormatUint(uint64(b.n), 10))
		w.write(" PRECEDING")
	case boundCurrentRow:
		w.write("CURRENT ROW")
	case boundFollowing:
		w.write(strconv.FormatUint(uint64(b.n), 10))
		w.write(" FOLLOWING")
	case boundUnboundedFollowing:
		w.write("UNBOUNDED FOLLOWING")
	}
}

// Window builds the OVER clause of a window function call:
// partitioning, ordering and an optional ROWS or RANGE frame.
type Window struct {
	partitions []Expr
	orders     []OrderClause
	frameUnits string
	frameStart FrameBound
	frameEnd   *FrameBound
	hasFrame   bool
}

// NewWindow returns a window partitioned by the given columns. Strings
// parse as column references.
func NewWindow(partitionBy ...any) *Window {
	return &Window{partitions: toColExprs(partitionBy)}
}

// PartitionBy appends partitioning columns.
func (win *Window) PartitionBy(cols ...any) *Window {
	win.partitions = append(win.partitions, toColExprs(cols)...)
	return win
}

// OrderBy appends ordering terms within the partition.
func (win *Window) OrderBy(orders ...OrderClause) *Window {
	win.orders = append(win.orders, orders...)
	return win
}

func (win *Window) frame(units string, start FrameBound, end []FrameBound) *Window {
	win.frameUnits = units
	win.frameStart = start
	win.frameEnd = nil
	if len(end) > 0 {
		e := end[0]
		win.frameEnd = &e
	}
	win.hasFrame = true
	return win
}

// Rows sets a ROWS frame. With one bound the frame runs from the bound
// to the current row; with two it is a BETWEEN frame.
func (win *Window) Rows(start FrameBound, end ...FrameBound) *Window {
	return win.frame("ROWS", start, end)
}

// Range sets a RANGE frame.
func (win *Window) Range(start FrameBound, end ...FrameBound) *Window {
	return win.frame("RANGE", start, end)
}

func (win *Window) render(w *writer) {
	w.byte('(')
	wrote := false
	if len(win.partitions) > 0 {
		w.write("PARTITION BY ")
		for i, p := range win.partitions {
			if i > 0 {
				w.write(", ")
			}
			w.expr(p)
		}
		wrote = true
	}
	if len(win.orders) > 0 {
		if wrote {
			w.byte(' ')
		}
		w.write("ORDER BY ")
		for i, o := range win.orders {
			if i > 0 {
				w.write(", ")
			}
			o.render(w)
		}
		wrote = true
	}
	if win.hasFrame {
		if wrote {
			w.byte(' ')
		}
		w.write(win.frameUnits)
		w.byte(' ')
		if win.frameEnd != nil {
			w.write("BETWEEN ")
			win.frameStart.render(w)
			w.write(" AND ")
			win.frameEnd.render(w)
		} else {
			win.frameStart.render(w)
		}
	}
	w.byte(')')
}
