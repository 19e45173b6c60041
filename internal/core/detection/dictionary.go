package detection

import "strings"

// Binding 詞典條目的對應結果：Mapped(name) 或 Suppressed
type Binding struct {
	name       string
	suppressed bool
}

// Mapped 建立對應到標準食材名稱的條目
func Mapped(name string) Binding {
	return Binding{name: name}
}

// Suppressed 建立刻意忽略的條目（過於籠統的標籤）
func Suppressed() Binding {
	return Binding{suppressed: true}
}

// Name 回傳標準食材名稱，Suppressed 時 ok 為 false
func (b Binding) Name() (string, bool) {
	if b.suppressed {
		return "", false
	}
	return b.name, true
}

// IsSuppressed 是否為忽略條目
func (b Binding) IsSuppressed() bool {
	return b.suppressed
}

// Entry 詞典條目
type Entry struct {
	Label   string
	Binding Binding
}

func mapped(label, name string) Entry {
	return Entry{Label: label, Binding: Mapped(name)}
}

func suppressed(label string) Entry {
	return Entry{Label: label, Binding: Suppressed()}
}

// Dictionary 靜態標籤詞典，建立後唯讀，可在多個 goroutine 間共用
type Dictionary struct {
	entries []Entry
	index   map[string]int
}

// NewDictionary 依傳入順序建立詞典，標籤一律轉小寫，重複標籤以後者為準但保留原本位置
func NewDictionary(entries []Entry) *Dictionary {
	d := &Dictionary{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		label := strings.ToLower(strings.TrimSpace(e.Label))
		if label == "" {
			continue
		}
		e.Label = label
		if i, ok := d.index[label]; ok {
			d.entries[i] = e
			continue
		}
		d.index[label] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d
}

var defaultDictionary = NewDictionary(curatedEntries)

// DefaultDictionary 回傳內建的食材詞典
func DefaultDictionary() *Dictionary {
	return defaultDictionary
}

// Lookup 查詢標籤，found 為 false 表示詞典中沒有此標籤
func (d *Dictionary) Lookup(label string) (Binding, bool) {
	i, ok := d.index[label]
	if !ok {
		return Binding{}, false
	}
	return d.entries[i].Binding, true
}

// Each 依插入順序走訪條目，fn 回傳 false 時停止
func (d *Dictionary) Each(fn func(Entry) bool) {
	for _, e := range d.entries {
		if !fn(e) {
			return
		}
	}
}

// Len 條目數量
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// CanonicalNames 回傳不重複的標準食材名稱，依首次出現順序
func (d *Dictionary) CanonicalNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		name, ok := e.Binding.Name()
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
