package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics of one pipeline run. Not safe for concurrent use.
type Bag struct {
	items []*Diagnostic
	max   uint16 // 0: без лимита
}

func NewBag(max uint16) *Bag {
	return &Bag{
		items: make([]*Diagnostic, 0, min(int(max), 16)),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d *Diagnostic) bool {
	if b.max != 0 && len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Full reports whether the limit has been reached.
func (b *Bag) Full() bool {
	return b.max != 0 && len(b.items) >= int(b.max)
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// ErrorCount counts diagnostics with SevError.
func (b *Bag) ErrorCount() int {
	n := 0
	for _, d := range b.items {
		if d.Severity >= SevError {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// Не модифицируйте возвращаемый срез: он указывает на внутренний массив Bag.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if b.max != 0 && total > int(b.max) {
		b.max = uint16(min(total, int(^uint16(0))))
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, start, end, severity (desc), code (asc).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated Code+Primary pairs, keeping the first.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	out := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
