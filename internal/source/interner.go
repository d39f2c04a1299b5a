package source

// StringID is an interned identifier name. NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner maps identifier text to small ids. One Interner belongs to one
// syntax tree and is not safe for concurrent use.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id of s, inserting it on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// своя копия, чтобы не держать исходный буфер
	cpy := string([]byte(s))
	id := StringID(mustU32(len(i.byID)))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the id of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the text for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on unknown ids.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len counts interned strings including NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}
