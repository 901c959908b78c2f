package analytics

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Unknown stands in for an unset grouping value.
const Unknown = "Unknown"

// Entry is one key of a Tally with its summed quantity.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Tally is a count-per-key mapping that remembers the order in which keys
// were first seen. That order is the tie-break everywhere a ranking is
// taken.
type Tally struct {
	order  []string
	counts map[string]int
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

func (t *Tally) Add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

func (t *Tally) Count(key string) int { return t.counts[key] }

func (t *Tally) Len() int { return len(t.order) }

// Keys in first-seen order.
func (t *Tally) Keys() []string {
	return append([]string(nil), t.order...)
}

func (t *Tally) Total() int {
	sum := 0
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// Entries in first-seen order.
func (t *Tally) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, Entry{Key: k, Count: t.counts[k]})
	}
	return out
}

// Ranked sorts entries by count, highest first; equal counts keep
// first-seen order.
func (t *Tally) Ranked() []Entry {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Map copies the counts into a plain map.
func (t *Tally) Map() map[string]int {
	m := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		m[k] = v
	}
	return m
}

// MarshalJSON writes a JSON object with keys in first-seen order.
func (t *Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, _ := json.Marshal(t.counts[k])
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CrossTab is a two-key grouping: row key -> column key -> summed quantity.
// Rows and the columns inside each row keep first-seen order.
type CrossTab struct {
	order []string
	rows  map[string]*Tally
}

func NewCrossTab() *CrossTab {
	return &CrossTab{rows: make(map[string]*Tally)}
}

func (c *CrossTab) Add(row, col string, n int) {
	t, ok := c.rows[row]
	if !ok {
		t = NewTally()
		c.rows[row] = t
		c.order = append(c.order, row)
	}
	t.Add(col, n)
}

// Row returns the column tally for a row key, or an empty tally.
func (c *CrossTab) Row(key string) *Tally {
	if t, ok := c.rows[key]; ok {
		return t
	}
	return NewTally()
}

func (c *CrossTab) Keys() []string {
	return append([]string(nil), c.order...)
}

func (c *CrossTab) Len() int { return len(c.order) }

// Total sums every cell.
func (c *CrossTab) Total() int {
	sum := 0
	for _, t := range c.rows {
		sum += t.Total()
	}
	return sum
}

func (c *CrossTab) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		rb, err := c.rows[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(rb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
