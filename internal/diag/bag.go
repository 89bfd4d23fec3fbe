package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics up to a limit and carries the fatal threshold
// that phase drivers consult before skipping a failed unit.
type Bag struct {
	items []Diagnostic
	max   int
	fatal Severity
	// dropped counts diagnostics rejected by the limit.
	dropped int
}

// NewBag returns a bag holding at most max diagnostics (0 = unlimited)
// with the fatal threshold set to SevError.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
		fatal: SevError,
	}
}

// SetFatalLevel sets the severity at or above which phases abort.
func (b *Bag) SetFatalLevel(sev Severity) {
	b.fatal = sev
}

// FatalLevel returns the configured threshold.
func (b *Bag) FatalLevel() Severity {
	return b.fatal
}

// IsFatal reports whether sev meets the fatal threshold.
func (b *Bag) IsFatal(sev Severity) bool {
	return sev >= b.fatal
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Dropped reports how many diagnostics the limit rejected.
func (b *Bag) Dropped() int {
	return b.dropped
}

// Items возвращает read-only slice диагностик.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from other, ignoring the limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders diagnostics by file, start, end, severity (desc), code (asc).
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

// простая дедупликация (по Code+Primary)
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s", d.Code, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}

// Logger returns a Logger that pushes into b.
func (b *Bag) Logger() Logger {
	return BagReporter{Bag: b}
}
