package fraud

// Blacklist holds the blocked BIN set. It is immutable after
// construction, so lookups need no locking.
type Blacklist struct {
	bins map[string]struct{}
}

func NewBlacklist(bins ...string) *Blacklist {
	set := make(map[string]struct{}, len(bins))
	for _, b := range bins {
		set[b] = struct{}{}
	}
	return &Blacklist{bins: set}
}

// DefaultBlacklist seeds the BINs known to front test/abuse cards.
func DefaultBlacklist() *Blacklist {
	return NewBlacklist("123456", "654321", "999999")
}

func (b *Blacklist) Blocked(bin string) bool {
	_, blocked := b.bins[bin]
	return blocked
}
