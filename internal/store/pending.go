package store

// pending holds the unflushed changes of a node.
type pending struct {
	cleared bool
	keys    []string
	values  map[string]string
}

func (p *pending) put(key, value string) {
	if p.values == nil {
		p.values = map[string]string{}
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *pending) clear() {
	p.cleared = true
	p.keys = nil
	p.values = nil
}

func (p *pending) empty() bool {
	return !p.cleared && len(p.keys) == 0
}

func (p *pending) reset() {
	*p = pending{}
}

// merge overlays the pending changes on the persisted key order.
func (p *pending) merge(persisted []string) []string {
	var base []string
	if !p.cleared {
		base = persisted
	}
	out := make([]string, 0, len(base)+len(p.keys))
	seen := make(map[string]struct{}, len(base))
	for _, key := range base {
		seen[key] = struct{}{}
		out = append(out, key)
	}
	for _, key := range p.keys {
		if _, ok := seen[key]; ok {
			continue
		}
		out = append(out, key)
	}
	return out
}

type entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// apply returns entries with the pending changes written through.
func (p *pending) apply(entries []entry) []entry {
	if p.cleared {
		entries = nil
	}
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Key] = i
	}
	for _, key := range p.keys {
		value := p.values[key]
		if i, ok := index[key]; ok {
			entries[i].Value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, entry{Key: key, Value: value})
	}
	return entries
}

func entryKeys(entries []entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}
