package ezexcel

import "github.com/Descent098/ezexcel/pkg/ezexcel/record"

// Rows is a lazy, finite cursor over decoded instances. Each call to Next
// decodes one row; the cursor is not restartable. A decode failure stops
// iteration and is reported by Err.
//
//	rows, err := sheet.Load()
//	if err != nil {
//		return err
//	}
//	for rows.Next() {
//		use(rows.Value())
//	}
//	return rows.Err()
type Rows[T any] struct {
	schema *record.Schema
	rows   [][]string
	pos    int
	cur    T
	err    error
}

// Next decodes the next row. It returns false when the rows are exhausted
// or a decode fails; check Err after the loop.
func (r *Rows[T]) Next() bool {
	if r.err != nil || r.pos >= len(r.rows) {
		return false
	}
	v, err := r.schema.Decode(r.rows[r.pos])
	r.pos++
	if err != nil {
		r.err = err
		return false
	}
	r.cur = v.(T)
	return true
}

// Value returns the instance decoded by the last successful Next.
func (r *Rows[T]) Value() T {
	return r.cur
}

// Err returns the first decode error encountered, if any.
func (r *Rows[T]) Err() error {
	return r.err
}
